package app

import (
	"context"
	"testing"

	gormsqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"studymate/internal/model"
	"studymate/internal/repository"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(gormsqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Paragraph{},
		&model.DocumentChat{},
		&model.FreeformChat{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// recordingGenerator captures the prompt and returns a fixed answer.
type recordingGenerator struct {
	lastPrompt string
	calls      int
	answer     string
}

func (g *recordingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	g.lastPrompt = prompt
	g.calls++
	if g.answer == "" {
		return "ok", nil
	}
	return g.answer, nil
}

// failingGenerator always fails with the given message.
type failingGenerator struct {
	message string
	calls   int
}

func (g *failingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	g.calls++
	return "", errString(g.message)
}

type errString string

func (e errString) Error() string { return string(e) }

type fakeCache struct {
	entries map[string][]HistoryEntry
	dirty   map[string]bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		entries: make(map[string][]HistoryEntry),
		dirty:   make(map[string]bool),
	}
}

func (c *fakeCache) GetHistory(ctx context.Context, username string) ([]HistoryEntry, bool, error) {
	_ = ctx
	entries, ok := c.entries[username]
	return entries, ok, nil
}

func (c *fakeCache) SetHistory(ctx context.Context, username string, entries []HistoryEntry) error {
	_ = ctx
	c.entries[username] = entries
	return nil
}

func (c *fakeCache) DeleteHistory(ctx context.Context, username string) error {
	_ = ctx
	delete(c.entries, username)
	return nil
}

func (c *fakeCache) MarkDirty(ctx context.Context, username string) error {
	_ = ctx
	c.dirty[username] = true
	return nil
}

func (c *fakeCache) IsDirty(ctx context.Context, username string) (bool, error) {
	_ = ctx
	return c.dirty[username], nil
}

type fakePublisher struct {
	events []HistoryEvent
}

func (p *fakePublisher) Publish(ctx context.Context, event HistoryEvent) error {
	_ = ctx
	p.events = append(p.events, event)
	return nil
}

func seedCorpus(t *testing.T, db *gorm.DB, username string, texts []string) {
	t.Helper()
	repo := repository.NewParagraphRepository(db)
	if err := repo.ReplaceForUser(username, texts); err != nil {
		t.Fatalf("seed corpus: %v", err)
	}
}
