package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"studymate/internal/ai"
	"studymate/internal/model"
	"studymate/internal/repository"
	"studymate/internal/retrieval"
)

// QAService answers questions. Grounded asks run the question through the
// ranker over the user's corpus and constrain the model to the assembled
// context; freeform chats hand the raw message to the model unchanged.
// A record is persisted only after the model call succeeds.
type QAService struct {
	paragraphRepo *repository.ParagraphRepository
	documentChats *repository.DocumentChatRepository
	freeformChats *repository.FreeformChatRepository
	generator     ai.Generator
	historyCache  HistoryCache
	publisher     EventPublisher
}

type AskResult struct {
	Answer            string   `json:"answer"`
	MatchedParagraphs []string `json:"matched_paragraphs"`
}

func NewQAService(
	paragraphRepo *repository.ParagraphRepository,
	documentChats *repository.DocumentChatRepository,
	freeformChats *repository.FreeformChatRepository,
	generator ai.Generator,
	historyCache HistoryCache,
	publisher EventPublisher,
) *QAService {
	return &QAService{
		paragraphRepo: paragraphRepo,
		documentChats: documentChats,
		freeformChats: freeformChats,
		generator:     generator,
		historyCache:  historyCache,
		publisher:     publisher,
	}
}

// Ask answers a question from the user's corpus only.
func (s *QAService) Ask(ctx context.Context, username, question string) (*AskResult, error) {
	username = strings.TrimSpace(username)
	question = strings.TrimSpace(question)
	if username == "" || question == "" {
		return nil, ErrInvalidInput
	}

	paragraphs, err := s.paragraphRepo.ListForUser(username)
	if err != nil {
		return nil, err
	}
	if len(paragraphs) == 0 {
		return nil, ErrNoContent
	}

	texts := make([]string, len(paragraphs))
	for i, p := range paragraphs {
		texts[i] = p.Text
	}

	matched := retrieval.Rank(question, texts)
	prompt := retrieval.BuildPrompt(question, matched)

	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModel, err)
	}
	answer = strings.TrimSpace(answer)

	record := &model.DocumentChat{
		RecordID:  ulid.Make().String(),
		Username:  username,
		Question:  question,
		Answer:    answer,
		Timestamp: time.Now().UnixMilli(),
	}
	record.SetMatchedTexts(matched)
	if err := s.documentChats.Create(record); err != nil {
		return nil, err
	}
	s.invalidateHistory(ctx, username, model.SourceDocument)

	return &AskResult{Answer: answer, MatchedParagraphs: matched}, nil
}

// Chat sends the raw message to the model with no retrieval step.
func (s *QAService) Chat(ctx context.Context, username, message string) (string, error) {
	username = strings.TrimSpace(username)
	message = strings.TrimSpace(message)
	if username == "" || message == "" {
		return "", ErrInvalidInput
	}

	answer, err := s.generator.Generate(ctx, message)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrModel, err)
	}
	answer = strings.TrimSpace(answer)

	record := &model.FreeformChat{
		RecordID:  ulid.Make().String(),
		Username:  username,
		Message:   message,
		Answer:    answer,
		Timestamp: time.Now().UnixMilli(),
	}
	if err := s.freeformChats.Create(record); err != nil {
		return "", err
	}
	s.invalidateHistory(ctx, username, model.SourceFreeform)

	return answer, nil
}

// invalidateHistory is best effort: a stale cache entry expires on its own
// TTL, so cache and broker failures never fail the request.
func (s *QAService) invalidateHistory(ctx context.Context, username, source string) {
	if s.historyCache != nil {
		_ = s.historyCache.MarkDirty(ctx, username)
	}
	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, HistoryEvent{Username: username, Source: source})
	}
}
