package repository

import (
	"fmt"

	"gorm.io/gorm"

	"studymate/internal/model"
)

type ParagraphRepository struct {
	db *gorm.DB
}

func NewParagraphRepository(db *gorm.DB) *ParagraphRepository {
	return &ParagraphRepository{db: db}
}

// ReplaceForUser swaps the user's whole corpus for the given texts inside
// one transaction, so a concurrent reader sees either the old corpus or
// the new one, never a mix. Positions are assigned in slice order.
func (r *ParagraphRepository) ReplaceForUser(username string, texts []string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("username = ?", username).Delete(&model.Paragraph{}).Error; err != nil {
			return err
		}
		if len(texts) == 0 {
			return nil
		}
		paragraphs := make([]model.Paragraph, len(texts))
		for i, text := range texts {
			paragraphs[i] = model.Paragraph{
				Username: username,
				Position: i,
				Text:     text,
			}
		}
		return tx.Create(&paragraphs).Error
	})
	if err != nil {
		return fmt.Errorf("replace paragraphs failed: %w", err)
	}
	return nil
}

// ListForUser returns the user's corpus in extraction order.
func (r *ParagraphRepository) ListForUser(username string) ([]model.Paragraph, error) {
	var paragraphs []model.Paragraph
	if err := r.db.Where("username = ?", username).Order("position ASC").Find(&paragraphs).Error; err != nil {
		return nil, fmt.Errorf("list paragraphs failed: %w", err)
	}
	return paragraphs, nil
}

// DeleteForUser purges the user's corpus.
func (r *ParagraphRepository) DeleteForUser(username string) error {
	if err := r.db.Where("username = ?", username).Delete(&model.Paragraph{}).Error; err != nil {
		return fmt.Errorf("delete paragraphs failed: %w", err)
	}
	return nil
}
