package app

import (
	"strings"

	"studymate/internal/model"
	"studymate/internal/repository"
)

// CorpusService owns the per-user paragraph corpus. Every upload replaces
// the previous corpus wholesale; there is no merge.
type CorpusService struct {
	paragraphRepo *repository.ParagraphRepository
}

func NewCorpusService(paragraphRepo *repository.ParagraphRepository) *CorpusService {
	return &CorpusService{paragraphRepo: paragraphRepo}
}

// Replace stores the extracted paragraphs as the user's new corpus,
// discarding whatever was there before. Paragraphs keep their given order
// and are indexed continuously across all files of one upload. An upload
// with no extractable text leaves the corpus empty.
func (s *CorpusService) Replace(username string, paragraphs []string) (int, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, ErrInvalidInput
	}
	if err := s.paragraphRepo.ReplaceForUser(username, paragraphs); err != nil {
		return 0, err
	}
	return len(paragraphs), nil
}

// Purge deletes the user's whole corpus.
func (s *CorpusService) Purge(username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrInvalidInput
	}
	return s.paragraphRepo.DeleteForUser(username)
}

// List returns the user's corpus in stored order.
func (s *CorpusService) List(username string) ([]model.Paragraph, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrInvalidInput
	}
	return s.paragraphRepo.ListForUser(username)
}
