package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"studymate/internal/model"
)

type DocumentChatRepository struct {
	db *gorm.DB
}

func NewDocumentChatRepository(db *gorm.DB) *DocumentChatRepository {
	return &DocumentChatRepository{db: db}
}

func (r *DocumentChatRepository) Create(chat *model.DocumentChat) error {
	if err := r.db.Create(chat).Error; err != nil {
		return fmt.Errorf("create document chat failed: %w", err)
	}
	return nil
}

func (r *DocumentChatRepository) ListByUsername(username string) ([]model.DocumentChat, error) {
	var chats []model.DocumentChat
	if err := r.db.Where("username = ?", username).Find(&chats).Error; err != nil {
		return nil, fmt.Errorf("list document chats failed: %w", err)
	}
	return chats, nil
}

// GetByPosition returns the record at the zero-based position in creation
// order for the user, or nil when the position is out of range.
func (r *DocumentChatRepository) GetByPosition(username string, position int) (*model.DocumentChat, error) {
	if position < 0 {
		return nil, nil
	}
	var chat model.DocumentChat
	err := r.db.Where("username = ?", username).Order("id ASC").Offset(position).First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document chat by position failed: %w", err)
	}
	return &chat, nil
}

// DeleteByRecordID removes the user's record with the given handle and
// reports whether anything was deleted.
func (r *DocumentChatRepository) DeleteByRecordID(username, recordID string) (bool, error) {
	result := r.db.Where("username = ? AND record_id = ?", username, recordID).Delete(&model.DocumentChat{})
	if result.Error != nil {
		return false, fmt.Errorf("delete document chat failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
