package model

import (
	"strings"
	"time"
)

type Role string

const (
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleTeacher:
		return RoleTeacher, true
	case RoleStudent:
		return RoleStudent, true
	}
	return "", false
}

type User struct {
	ID           uint   `gorm:"primarykey"`
	Email        string `gorm:"size:255;not null;uniqueIndex"`
	FullName     string
	Role         Role   `gorm:"size:16;not null;index"`
	PasswordHash string `gorm:"not null" json:"-"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
