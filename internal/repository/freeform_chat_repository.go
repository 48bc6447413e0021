package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"studymate/internal/model"
)

type FreeformChatRepository struct {
	db *gorm.DB
}

func NewFreeformChatRepository(db *gorm.DB) *FreeformChatRepository {
	return &FreeformChatRepository{db: db}
}

func (r *FreeformChatRepository) Create(chat *model.FreeformChat) error {
	if err := r.db.Create(chat).Error; err != nil {
		return fmt.Errorf("create freeform chat failed: %w", err)
	}
	return nil
}

func (r *FreeformChatRepository) ListByUsername(username string) ([]model.FreeformChat, error) {
	var chats []model.FreeformChat
	if err := r.db.Where("username = ?", username).Find(&chats).Error; err != nil {
		return nil, fmt.Errorf("list freeform chats failed: %w", err)
	}
	return chats, nil
}

// GetByPosition returns the record at the zero-based position in creation
// order for the user, or nil when the position is out of range.
func (r *FreeformChatRepository) GetByPosition(username string, position int) (*model.FreeformChat, error) {
	if position < 0 {
		return nil, nil
	}
	var chat model.FreeformChat
	err := r.db.Where("username = ?", username).Order("id ASC").Offset(position).First(&chat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get freeform chat by position failed: %w", err)
	}
	return &chat, nil
}

// DeleteByRecordID removes the user's record with the given handle and
// reports whether anything was deleted.
func (r *FreeformChatRepository) DeleteByRecordID(username, recordID string) (bool, error) {
	result := r.db.Where("username = ? AND record_id = ?", username, recordID).Delete(&model.FreeformChat{})
	if result.Error != nil {
		return false, fmt.Errorf("delete freeform chat failed: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
