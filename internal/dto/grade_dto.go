package dto

// GradeRequest updates the row named by GradeId when it exists, otherwise a
// new row is created.
type GradeRequest struct {
	ID         *uint  `json:"GradeId"`
	StudentID  string `json:"StudentId" binding:"required"`
	CourseName string `json:"CourseName"`
	Grade      *int   `json:"Grade" binding:"required"`
	ExamID     uint   `json:"ExamId" binding:"required"`
}

type GradeResponse struct {
	ID         uint   `json:"GradeId"`
	StudentID  string `json:"StudentId"`
	CourseName string `json:"CourseName"`
	Grade      int    `json:"Grade"`
	ExamID     uint   `json:"ExamId"`
}

type AggregateRequest struct {
	ExamID    uint   `json:"ExamId" binding:"required"`
	StudentID string `json:"StudentId" binding:"required"`
}
