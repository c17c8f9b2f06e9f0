package model

import "time"

const (
	SenderUser = "user"
	SenderAI   = "ai"
)

type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"userId"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Sender     string    `gorm:"size:8;not null" json:"sender"`
	IsFallback bool      `gorm:"not null;default:false" json:"isFallback"`
	IsFollowUp bool      `gorm:"not null;default:false" json:"isFollowUp"`
	IsError    bool      `gorm:"not null;default:false" json:"isError"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`
}
