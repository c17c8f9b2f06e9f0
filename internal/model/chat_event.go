package model

import "time"

// ChatEvent kinds recorded by the analytics worker.
const (
	EventFallback    = "fallback"
	EventFollowUp    = "follow_up"
	EventLLM         = "llm"
	EventLLMError    = "llm_error"
	EventRateLimited = "rate_limited"
)

type ChatEvent struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	MessageID  uint      `gorm:"index" json:"message_id"`
	Kind       string    `gorm:"size:16;not null;index" json:"kind"`
	RetryAfter int       `gorm:"not null;default:0" json:"retry_after"`
	CreatedAt  time.Time `json:"created_at"`
}
