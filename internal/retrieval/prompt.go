package retrieval

import (
	"fmt"
	"strings"
)

const promptTemplate = "Answer the question using only the following context. Do not use external knowledge.\n\nContext:\n%s\n\nQuestion: %s"

// BuildPrompt joins the selected paragraphs with a blank line, in ranker
// order, and wraps them in the grounding instruction. The question is
// restated verbatim after the context so the model answers it against the
// context block alone.
func BuildPrompt(question string, selected []string) string {
	context := strings.Join(selected, "\n\n")
	return fmt.Sprintf(promptTemplate, context, question)
}
