package retrieval

import (
	"sort"
	"strings"
)

// TopParagraphs is the maximum number of paragraphs selected for context.
const TopParagraphs = 3

type scoredParagraph struct {
	text  string
	score int
}

// Rank selects the paragraphs most likely to answer the question.
//
// The question is lower-cased and split on whitespace; a paragraph scores
// one point per question token contained anywhere in its lower-cased text.
// Tokens are not deduplicated, so a repeated token counts once per
// repetition. Paragraphs scoring zero are dropped, the rest are ordered by
// score descending with ties keeping their stored order, and at most
// TopParagraphs are returned. If nothing scores, the first TopParagraphs
// paragraphs are returned in stored order so the caller always has some
// context to hand the model.
//
// Callers must not pass an empty corpus; an empty corpus is rejected
// upstream before ranking.
func Rank(question string, paragraphs []string) []string {
	keywords := strings.Fields(strings.ToLower(question))

	scored := make([]scoredParagraph, 0, len(paragraphs))
	for _, para := range paragraphs {
		lower := strings.ToLower(para)
		score := 0
		for _, kw := range keywords {
			if strings.Contains(lower, kw) {
				score++
			}
		}
		if score > 0 {
			scored = append(scored, scoredParagraph{text: para, score: score})
		}
	}

	if len(scored) == 0 {
		n := len(paragraphs)
		if n > TopParagraphs {
			n = TopParagraphs
		}
		return append([]string(nil), paragraphs[:n]...)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	n := len(scored)
	if n > TopParagraphs {
		n = TopParagraphs
	}
	top := make([]string, n)
	for i := 0; i < n; i++ {
		top[i] = scored[i].text
	}
	return top
}
