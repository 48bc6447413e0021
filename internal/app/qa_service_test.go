package app

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"studymate/internal/model"
	"studymate/internal/repository"
)

func TestAsk_GroundedAnswer(t *testing.T) {
	db := openTestDB(t)
	seedCorpus(t, db, "ask-grounded", []string{
		"The cat sat.",
		"Dogs bark loudly.",
		"Cats and dogs play.",
	})

	gen := &recordingGenerator{answer: "They play together."}
	cache := newFakeCache()
	publisher := &fakePublisher{}
	svc := NewQAService(
		repository.NewParagraphRepository(db),
		repository.NewDocumentChatRepository(db),
		repository.NewFreeformChatRepository(db),
		gen,
		cache,
		publisher,
	)

	result, err := svc.Ask(context.Background(), "ask-grounded", "cat dog")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if result.Answer != "They play together." {
		t.Fatalf("unexpected answer: %q", result.Answer)
	}

	wantMatched := []string{
		"Cats and dogs play.",
		"The cat sat.",
		"Dogs bark loudly.",
	}
	if !reflect.DeepEqual(result.MatchedParagraphs, wantMatched) {
		t.Fatalf("unexpected matched paragraphs: %v", result.MatchedParagraphs)
	}

	// The prompt must constrain the model to the assembled context and end
	// with the verbatim question.
	if !strings.Contains(gen.lastPrompt, "using only the following context") {
		t.Fatalf("prompt missing grounding instruction: %q", gen.lastPrompt)
	}
	if !strings.HasSuffix(gen.lastPrompt, "Question: cat dog") {
		t.Fatalf("prompt must end with the question: %q", gen.lastPrompt)
	}

	var records []model.DocumentChat
	if err := db.Where("username = ?", "ask-grounded").Find(&records).Error; err != nil {
		t.Fatalf("query records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	rec := records[0]
	if rec.Question != "cat dog" || rec.Answer != "They play together." {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if !reflect.DeepEqual(rec.MatchedTexts(), wantMatched) {
		t.Fatalf("record matched paragraphs mismatch: %v", rec.MatchedTexts())
	}
	if rec.RecordID == "" || rec.Timestamp == 0 {
		t.Fatalf("record must carry handle and timestamp: %+v", rec)
	}

	if !cache.dirty["ask-grounded"] {
		t.Fatalf("history cache must be marked dirty after an answered ask")
	}
	if len(publisher.events) != 1 || publisher.events[0].Source != model.SourceDocument {
		t.Fatalf("expected one document invalidation event, got %v", publisher.events)
	}
}

func TestAsk_EmptyCorpusRejectedBeforeModelCall(t *testing.T) {
	db := openTestDB(t)
	gen := &recordingGenerator{}
	svc := NewQAService(
		repository.NewParagraphRepository(db),
		repository.NewDocumentChatRepository(db),
		repository.NewFreeformChatRepository(db),
		gen,
		nil,
		nil,
	)

	_, err := svc.Ask(context.Background(), "ask-empty", "anything")
	if !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("model must not be called without a corpus")
	}

	var count int64
	db.Model(&model.DocumentChat{}).Where("username = ?", "ask-empty").Count(&count)
	if count != 0 {
		t.Fatalf("no record must be persisted, got %d", count)
	}
}

func TestAsk_ModelFailurePersistsNothing(t *testing.T) {
	db := openTestDB(t)
	seedCorpus(t, db, "ask-fail", []string{"some paragraph"})

	gen := &failingGenerator{message: "quota exceeded"}
	svc := NewQAService(
		repository.NewParagraphRepository(db),
		repository.NewDocumentChatRepository(db),
		repository.NewFreeformChatRepository(db),
		gen,
		nil,
		nil,
	)

	_, err := svc.Ask(context.Background(), "ask-fail", "paragraph")
	if !errors.Is(err, ErrModel) {
		t.Fatalf("expected ErrModel, got %v", err)
	}
	if !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("upstream message must pass through: %v", err)
	}

	var count int64
	db.Model(&model.DocumentChat{}).Where("username = ?", "ask-fail").Count(&count)
	if count != 0 {
		t.Fatalf("no record must be persisted on model failure, got %d", count)
	}
}

func TestAsk_MissingFieldsAreInvalid(t *testing.T) {
	db := openTestDB(t)
	svc := NewQAService(
		repository.NewParagraphRepository(db),
		repository.NewDocumentChatRepository(db),
		repository.NewFreeformChatRepository(db),
		&recordingGenerator{},
		nil,
		nil,
	)

	if _, err := svc.Ask(context.Background(), "", "question"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("missing username: %v", err)
	}
	if _, err := svc.Ask(context.Background(), "someone", "   "); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("blank question: %v", err)
	}
}

func TestChat_RawMessageIsThePrompt(t *testing.T) {
	db := openTestDB(t)
	gen := &recordingGenerator{answer: "hello back"}
	cache := newFakeCache()
	publisher := &fakePublisher{}
	svc := NewQAService(
		repository.NewParagraphRepository(db),
		repository.NewDocumentChatRepository(db),
		repository.NewFreeformChatRepository(db),
		gen,
		cache,
		publisher,
	)

	answer, err := svc.Chat(context.Background(), "chat-user", "hello there")
	if err != nil {
		t.Fatalf("chat: %v", err)
	}
	if answer != "hello back" {
		t.Fatalf("unexpected answer: %q", answer)
	}
	if gen.lastPrompt != "hello there" {
		t.Fatalf("freeform chat must send the raw message, got %q", gen.lastPrompt)
	}

	var records []model.FreeformChat
	if err := db.Where("username = ?", "chat-user").Find(&records).Error; err != nil {
		t.Fatalf("query records: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Message != "hello there" || records[0].Answer != "hello back" {
		t.Fatalf("unexpected record: %+v", records[0])
	}
	if len(publisher.events) != 1 || publisher.events[0].Source != model.SourceFreeform {
		t.Fatalf("expected one freeform invalidation event, got %v", publisher.events)
	}
}

func TestChat_ModelFailurePersistsNothing(t *testing.T) {
	db := openTestDB(t)
	gen := &failingGenerator{message: "upstream down"}
	svc := NewQAService(
		repository.NewParagraphRepository(db),
		repository.NewDocumentChatRepository(db),
		repository.NewFreeformChatRepository(db),
		gen,
		nil,
		nil,
	)

	_, err := svc.Chat(context.Background(), "chat-fail", "hi")
	if !errors.Is(err, ErrModel) {
		t.Fatalf("expected ErrModel, got %v", err)
	}

	var count int64
	db.Model(&model.FreeformChat{}).Where("username = ?", "chat-fail").Count(&count)
	if count != 0 {
		t.Fatalf("no record must be persisted on model failure, got %d", count)
	}
}
