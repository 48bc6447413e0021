package app

import "context"

// HistoryEntry is one chat record in the merged per-user history, tagged
// with the kind it came from.
type HistoryEntry struct {
	RecordID          string   `json:"record_id"`
	Source            string   `json:"source"`
	Question          string   `json:"question"`
	Answer            string   `json:"answer"`
	MatchedParagraphs []string `json:"matched_paragraphs,omitempty"`
	Timestamp         int64    `json:"timestamp"`
}

// HistoryEvent notifies other instances that a user's history changed and
// any cached copy must be dropped.
type HistoryEvent struct {
	Username string `json:"username"`
	Source   string `json:"source"`
}

// HistoryCache caches the merged history per username.
type HistoryCache interface {
	GetHistory(ctx context.Context, username string) ([]HistoryEntry, bool, error)
	SetHistory(ctx context.Context, username string, entries []HistoryEntry) error
	DeleteHistory(ctx context.Context, username string) error
	MarkDirty(ctx context.Context, username string) error
	IsDirty(ctx context.Context, username string) (bool, error)
}

// EventPublisher fans history-change events out to the invalidation worker.
type EventPublisher interface {
	Publish(ctx context.Context, event HistoryEvent) error
}

// RecordHandle addresses one history record for deletion: either a record
// id or a zero-based position in the kind's creation order. The transport
// layer resolves the raw identifier into one of the two forms before the
// core sees it.
type RecordHandle struct {
	recordID   string
	position   int
	byPosition bool
}

func HandleByID(recordID string) RecordHandle {
	return RecordHandle{recordID: recordID}
}

func HandleByPosition(position int) RecordHandle {
	return RecordHandle{position: position, byPosition: true}
}
