package model

import "time"

type Class struct {
	ClassID      string `gorm:"primaryKey;size:64"`
	CourseName   string `gorm:"not null"`
	Description  *string
	TeacherEmail string         `gorm:"not null;index"`
	Students     []ClassStudent `gorm:"foreignKey:ClassID;references:ClassID"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ClassStudent is one enrollment row.
type ClassStudent struct {
	ID        uint   `gorm:"primarykey"`
	ClassID   string `gorm:"size:64;not null;uniqueIndex:idx_class_student"`
	StudentID string `gorm:"size:128;not null;uniqueIndex:idx_class_student;index"`
}

func (c *Class) StudentIDs() []string {
	ids := make([]string, 0, len(c.Students))
	for _, s := range c.Students {
		ids = append(ids, s.StudentID)
	}
	return ids
}

type ClassExam struct {
	ID        uint   `gorm:"primarykey"`
	ClassID   string `gorm:"size:64;not null;index"`
	ExamID    uint   `gorm:"not null;index"`
	CreatedAt time.Time
}
