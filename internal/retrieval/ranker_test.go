package retrieval

import (
	"reflect"
	"testing"
)

func TestRank_ScoresAndOrders(t *testing.T) {
	paragraphs := []string{
		"The cat sat.",
		"Dogs bark loudly.",
		"Cats and dogs play.",
	}

	got := Rank("cat dog", paragraphs)

	want := []string{
		"Cats and dogs play.",
		"The cat sat.",
		"Dogs bark loudly.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected ranking: %v", got)
	}
}

func TestRank_StableTieBreak(t *testing.T) {
	paragraphs := []string{
		"alpha shared token",
		"beta shared token",
		"gamma shared token",
		"delta shared token",
	}

	got := Rank("shared", paragraphs)

	want := []string{
		"alpha shared token",
		"beta shared token",
		"gamma shared token",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("tie break should keep stored order, got %v", got)
	}
}

func TestRank_CaseInsensitiveSubstring(t *testing.T) {
	paragraphs := []string{
		"Concatenation of words.",
		"Nothing relevant here.",
	}

	// "cat" matches inside "Concatenation": containment, not word match.
	got := Rank("CAT", paragraphs)
	if len(got) != 1 || got[0] != "Concatenation of words." {
		t.Fatalf("expected substring match, got %v", got)
	}
}

func TestRank_DuplicateKeywordsDoubleCount(t *testing.T) {
	paragraphs := []string{
		"cats everywhere",         // "cat cat" scores 2
		"one cat and one ferret",  // "ferret" alone scores 1 per token
	}

	got := Rank("cat cat", paragraphs)
	// Both contain "cat"; both score 2; stored order preserved.
	want := []string{"cats everywhere", "one cat and one ferret"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected ranking: %v", got)
	}

	// The duplicate must actually inflate scores: a single-occurrence
	// paragraph still ties with a multi-occurrence one because each
	// keyword contributes at most one point.
	got = Rank("ferret ferret", paragraphs)
	if len(got) != 1 || got[0] != "one cat and one ferret" {
		t.Fatalf("expected only the ferret paragraph, got %v", got)
	}
}

func TestRank_FallbackOnNoMatches(t *testing.T) {
	paragraphs := []string{"first", "second", "third", "fourth"}

	got := Rank("zzz qqq", paragraphs)
	want := []string{"first", "second", "third"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected first three paragraphs, got %v", got)
	}
}

func TestRank_EmptyQuestionFallsBack(t *testing.T) {
	paragraphs := []string{"only one"}

	got := Rank("", paragraphs)
	if !reflect.DeepEqual(got, []string{"only one"}) {
		t.Fatalf("expected whole short corpus, got %v", got)
	}
}

func TestRank_AtMostThree(t *testing.T) {
	paragraphs := []string{
		"go routines", "go channels", "go maps", "go slices", "go structs",
	}

	got := Rank("go", paragraphs)
	if len(got) != 3 {
		t.Fatalf("expected 3 results, got %d", len(got))
	}
	want := []string{"go routines", "go channels", "go maps"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected selection: %v", got)
	}
}
