package model

import (
	"time"

	"gorm.io/datatypes"
)

type Exam struct {
	ID          uint           `gorm:"primarykey"`
	Title       string         `gorm:"not null"`
	Date        datatypes.Date `gorm:"not null"`
	CourseName  string         `gorm:"not null"`
	Time        string
	Description *string `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
