package model

import "time"

// Paragraph is one text unit of a user's corpus. Position reflects
// extraction order and is unique per username; the whole set for a
// username is replaced on every upload.
type Paragraph struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"size:64;not null;index:idx_paragraph_owner_pos,unique" json:"username"`
	Position  int       `gorm:"not null;index:idx_paragraph_owner_pos,unique" json:"index"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
