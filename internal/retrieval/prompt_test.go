package retrieval

import (
	"strings"
	"testing"
)

func TestBuildPrompt_Layout(t *testing.T) {
	prompt := BuildPrompt("what is a goroutine?", []string{"para one", "para two"})

	if !strings.HasPrefix(prompt, "Answer the question using only the following context. Do not use external knowledge.") {
		t.Fatalf("missing grounding instruction: %q", prompt)
	}
	if !strings.Contains(prompt, "Context:\npara one\n\npara two") {
		t.Fatalf("paragraphs not joined with blank line in order: %q", prompt)
	}
	if !strings.HasSuffix(prompt, "Question: what is a goroutine?") {
		t.Fatalf("question must be restated verbatim at the end: %q", prompt)
	}
}

func TestBuildPrompt_QuestionAfterContext(t *testing.T) {
	prompt := BuildPrompt("q", []string{"ctx"})

	ctxIdx := strings.Index(prompt, "Context:")
	qIdx := strings.Index(prompt, "Question:")
	if ctxIdx < 0 || qIdx < 0 || qIdx < ctxIdx {
		t.Fatalf("question must follow context block: %q", prompt)
	}
}
