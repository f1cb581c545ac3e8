package dto

import (
	"time"

	"github.com/lshigami/examhub/internal/model"
)

type MessageRequest struct {
	ClassID     string `json:"ClassId" binding:"required"`
	SenderEmail string `json:"SenderEmail" binding:"required"`
	Content     string `json:"Content" binding:"required"`
}

type MessageResponse struct {
	ID          uint      `json:"MessageId"`
	ClassID     string    `json:"ClassId"`
	SenderEmail string    `json:"SenderEmail"`
	Content     string    `json:"Content"`
	SentAt      time.Time `json:"SentAt"`
}

type RegisterRequest struct {
	Email    string `json:"Email" binding:"required,email"`
	Password string `json:"Password" binding:"required"`
	FullName string `json:"FullName"`
	Role     string `json:"Role" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"Email" binding:"required"`
	Password string `json:"Password" binding:"required"`
}

type UserResponse struct {
	ID        uint       `json:"UserId"`
	Email     string     `json:"Email"`
	FullName  string     `json:"FullName"`
	Role      model.Role `json:"Role" swaggertype:"string"`
	CreatedAt time.Time  `json:"CreatedAt"`
}
