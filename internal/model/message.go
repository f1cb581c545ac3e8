package model

import "time"

type Message struct {
	ID          uint      `gorm:"primarykey"`
	ClassID     string    `gorm:"size:64;not null;index"`
	SenderEmail string    `gorm:"not null"`
	Content     string    `gorm:"type:text;not null"`
	SentAt      time.Time `gorm:"not null;index"`
}
