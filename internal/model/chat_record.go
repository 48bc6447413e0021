package model

import (
	"encoding/json"
	"time"
)

// Chat record sources. Document chats carry the matched paragraphs used
// to ground the answer; freeform chats go straight to the model.
const (
	SourceDocument = "document"
	SourceFreeform = "freeform"
)

// DocumentChat is one grounded question/answer exchange.
// MatchedParagraphs is stored as a JSON array of the paragraph texts the
// ranker selected, copied by value at query time.
type DocumentChat struct {
	ID                uint      `gorm:"primaryKey" json:"-"`
	RecordID          string    `gorm:"size:26;not null;uniqueIndex" json:"record_id"`
	Username          string    `gorm:"size:64;not null;index" json:"username"`
	Question          string    `gorm:"type:text;not null" json:"question"`
	Answer            string    `gorm:"type:text;not null" json:"answer"`
	MatchedParagraphs string    `gorm:"type:text" json:"-"`
	Timestamp         int64     `gorm:"not null;index" json:"timestamp"`
	CreatedAt         time.Time `json:"created_at"`
}

// MatchedTexts returns the decoded matched paragraphs; nil on decode error.
func (c *DocumentChat) MatchedTexts() []string {
	if c.MatchedParagraphs == "" {
		return nil
	}
	var texts []string
	_ = json.Unmarshal([]byte(c.MatchedParagraphs), &texts)
	return texts
}

// SetMatchedTexts stores the matched paragraphs as JSON.
func (c *DocumentChat) SetMatchedTexts(texts []string) {
	if len(texts) == 0 {
		c.MatchedParagraphs = "[]"
		return
	}
	b, _ := json.Marshal(texts)
	c.MatchedParagraphs = string(b)
}

// FreeformChat is one free-form message/answer exchange with no
// retrieval step.
type FreeformChat struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	RecordID  string    `gorm:"size:26;not null;uniqueIndex" json:"record_id"`
	Username  string    `gorm:"size:64;not null;index" json:"username"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Answer    string    `gorm:"type:text;not null" json:"answer"`
	Timestamp int64     `gorm:"not null;index" json:"timestamp"`
	CreatedAt time.Time `json:"created_at"`
}
