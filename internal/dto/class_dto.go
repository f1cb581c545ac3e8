package dto

type ClassRequest struct {
	ClassID      string   `json:"ClassId"`
	CourseName   string   `json:"CourseName" binding:"required"`
	Description  *string  `json:"Description"`
	TeacherEmail string   `json:"TeacherEmail" binding:"required"`
	StudentIDs   []string `json:"StudentIds"`
}

type ClassResponse struct {
	ClassID      string   `json:"ClassId"`
	CourseName   string   `json:"CourseName"`
	Description  *string  `json:"Description"`
	TeacherEmail string   `json:"TeacherEmail"`
	StudentIDs   []string `json:"StudentIds"`
}

type ExamRequest struct {
	Title       string  `json:"Title" binding:"required"`
	Date        string  `json:"Date" binding:"required" example:"2025-06-01"`
	CourseName  string  `json:"CourseName" binding:"required"`
	Time        string  `json:"Time"`
	Description *string `json:"Description"`
}

type ExamResponse struct {
	ID          uint    `json:"ExamId"`
	Title       string  `json:"Title"`
	Date        string  `json:"Date"`
	CourseName  string  `json:"CourseName"`
	Time        string  `json:"Time"`
	Description *string `json:"Description"`
}

type ClassExamRequest struct {
	ClassID string `json:"ClassId" binding:"required"`
	ExamID  uint   `json:"ExamId" binding:"required"`
}

type ClassExamResponse struct {
	ID      uint   `json:"ClassExamId"`
	ClassID string `json:"ClassId"`
	ExamID  uint   `json:"ExamId"`
}
