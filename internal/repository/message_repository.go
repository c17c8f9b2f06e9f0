package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"supportchat/internal/model"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("create message failed: %w", err)
	}
	return nil
}

// ListByUserID returns the user's messages oldest first, capped at limit.
func (r *MessageRepository) ListByUserID(userID uint, limit int) ([]model.Message, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var messages []model.Message
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Limit(limit).Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list messages failed: %w", err)
	}
	return messages, nil
}

// ListRecentByUserID returns the user's messages created after since, oldest
// first, capped at limit. Used to assemble LLM conversation context.
func (r *MessageRepository) ListRecentByUserID(userID uint, since time.Time, limit int) ([]model.Message, error) {
	if limit <= 0 {
		limit = 10
	}

	var messages []model.Message
	if err := r.db.Where("user_id = ? AND created_at > ?", userID, since).
		Order("created_at ASC").
		Limit(limit).
		Find(&messages).Error; err != nil {
		return nil, fmt.Errorf("list recent messages failed: %w", err)
	}
	return messages, nil
}
