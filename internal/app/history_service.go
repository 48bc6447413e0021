package app

import (
	"context"
	"sort"
	"strings"

	"studymate/internal/model"
	"studymate/internal/repository"
)

// HistoryService lists and deletes a user's merged chat history across
// both record kinds.
type HistoryService struct {
	documentChats *repository.DocumentChatRepository
	freeformChats *repository.FreeformChatRepository
	historyCache  HistoryCache
	publisher     EventPublisher
}

func NewHistoryService(
	documentChats *repository.DocumentChatRepository,
	freeformChats *repository.FreeformChatRepository,
	historyCache HistoryCache,
	publisher EventPublisher,
) *HistoryService {
	return &HistoryService{
		documentChats: documentChats,
		freeformChats: freeformChats,
		historyCache:  historyCache,
		publisher:     publisher,
	}
}

// List returns the user's document and freeform records merged into one
// sequence sorted by timestamp descending. Records without a timestamp
// sort last. Equal timestamps keep document-before-freeform insertion
// order via the stable sort.
func (s *HistoryService) List(ctx context.Context, username string) ([]HistoryEntry, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrInvalidInput
	}

	if s.historyCache != nil {
		dirty, err := s.historyCache.IsDirty(ctx, username)
		if err == nil && !dirty {
			if cached, hit, cacheErr := s.historyCache.GetHistory(ctx, username); cacheErr == nil && hit {
				return cached, nil
			}
		}
	}

	docs, err := s.documentChats.ListByUsername(username)
	if err != nil {
		return nil, err
	}
	frees, err := s.freeformChats.ListByUsername(username)
	if err != nil {
		return nil, err
	}

	entries := make([]HistoryEntry, 0, len(docs)+len(frees))
	for _, chat := range docs {
		entries = append(entries, HistoryEntry{
			RecordID:          chat.RecordID,
			Source:            model.SourceDocument,
			Question:          chat.Question,
			Answer:            chat.Answer,
			MatchedParagraphs: chat.MatchedTexts(),
			Timestamp:         chat.Timestamp,
		})
	}
	for _, chat := range frees {
		entries = append(entries, HistoryEntry{
			RecordID:  chat.RecordID,
			Source:    model.SourceFreeform,
			Question:  chat.Message,
			Answer:    chat.Answer,
			Timestamp: chat.Timestamp,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp > entries[j].Timestamp
	})

	if s.historyCache != nil {
		if dirty, dirtyErr := s.historyCache.IsDirty(ctx, username); dirtyErr == nil && !dirty {
			_ = s.historyCache.SetHistory(ctx, username, entries)
		}
	}
	return entries, nil
}

// Delete removes one record of the given source. A by-position handle is
// resolved against the kind's records in creation order first; any miss,
// an out-of-range position, or an unknown source is ErrRecordNotFound.
func (s *HistoryService) Delete(ctx context.Context, username string, handle RecordHandle, source string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrInvalidInput
	}

	recordID := handle.recordID
	var deleted bool
	var err error

	switch source {
	case model.SourceDocument:
		if handle.byPosition {
			chat, posErr := s.documentChats.GetByPosition(username, handle.position)
			if posErr != nil {
				return posErr
			}
			if chat == nil {
				return ErrRecordNotFound
			}
			recordID = chat.RecordID
		}
		deleted, err = s.documentChats.DeleteByRecordID(username, recordID)
	case model.SourceFreeform:
		if handle.byPosition {
			chat, posErr := s.freeformChats.GetByPosition(username, handle.position)
			if posErr != nil {
				return posErr
			}
			if chat == nil {
				return ErrRecordNotFound
			}
			recordID = chat.RecordID
		}
		deleted, err = s.freeformChats.DeleteByRecordID(username, recordID)
	default:
		return ErrRecordNotFound
	}

	if err != nil {
		return err
	}
	if !deleted {
		return ErrRecordNotFound
	}

	if s.historyCache != nil {
		_ = s.historyCache.MarkDirty(ctx, username)
	}
	if s.publisher != nil {
		_ = s.publisher.Publish(ctx, HistoryEvent{Username: username, Source: source})
	}
	return nil
}
