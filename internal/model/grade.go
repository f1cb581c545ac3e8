package model

import "time"

const (
	MinGrade = 0
	MaxGrade = 100
)

// Grade is the aggregate result of one student for one exam.
type Grade struct {
	ID         uint   `gorm:"primarykey"`
	StudentID  string `gorm:"size:128;not null;index:idx_grade_student_exam"`
	CourseName string
	Grade      int  `gorm:"not null"`
	ExamID     uint `gorm:"not null;index:idx_grade_student_exam"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func ValidGrade(g int) bool {
	return g >= MinGrade && g <= MaxGrade
}
