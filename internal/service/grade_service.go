package service

import (
	"errors"
	"strings"

	"github.com/jinzhu/copier"
	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/model"
	"github.com/lshigami/examhub/internal/repository"
	"github.com/rs/zerolog/log"
)

type GradeService interface {
	// SaveGrade reports created=true when a new row was inserted.
	SaveGrade(req dto.GradeRequest) (resp *dto.GradeResponse, created bool, err error)
	GetGrade(id uint) (*dto.GradeResponse, error)
	ListGrades(studentID string, examID uint) ([]dto.GradeResponse, error)
	DeleteGrade(id uint) error
}

type gradeService struct {
	repo     repository.GradeRepository
	examRepo repository.ExamRepository
}

func NewGradeService(repo repository.GradeRepository, examRepo repository.ExamRepository) GradeService {
	return &gradeService{repo: repo, examRepo: examRepo}
}

func toGradeResponses(grades []model.Grade) []dto.GradeResponse {
	resps := make([]dto.GradeResponse, 0, len(grades))
	for i := range grades {
		var resp dto.GradeResponse
		copier.Copy(&resp, &grades[i])
		resps = append(resps, resp)
	}
	return resps
}

// SaveGrade updates the row named by GradeId when it exists and inserts a
// new one otherwise.
func (s *gradeService) SaveGrade(req dto.GradeRequest) (*dto.GradeResponse, bool, error) {
	if req.Grade == nil {
		return nil, false, apperror.Validation("Grade is required")
	}
	if err := CheckGrade(*req.Grade); err != nil {
		return nil, false, err
	}
	studentID := strings.TrimSpace(req.StudentID)
	if studentID == "" {
		return nil, false, apperror.Validation("StudentId is required")
	}
	exam, err := s.examRepo.FindByID(req.ExamID)
	if err != nil {
		return nil, false, err
	}
	courseName := strings.TrimSpace(req.CourseName)
	if courseName == "" {
		courseName = exam.CourseName
	}

	var grade *model.Grade
	if req.ID != nil && *req.ID != 0 {
		found, err := s.repo.FindByID(*req.ID)
		if err != nil && !errors.Is(err, apperror.ErrNotFound) {
			return nil, false, err
		}
		grade = found
	}

	created := grade == nil
	if created {
		grade = &model.Grade{}
	}
	grade.StudentID = studentID
	grade.CourseName = courseName
	grade.Grade = *req.Grade
	grade.ExamID = req.ExamID

	if created {
		err = s.repo.Create(grade)
	} else {
		err = s.repo.Update(grade)
	}
	if err != nil {
		log.Error().Err(err).Str("studentId", studentID).Uint("examId", req.ExamID).Msg("Failed to save grade")
		return nil, false, err
	}

	var resp dto.GradeResponse
	copier.Copy(&resp, grade)
	return &resp, created, nil
}

func (s *gradeService) GetGrade(id uint) (*dto.GradeResponse, error) {
	grade, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	var resp dto.GradeResponse
	copier.Copy(&resp, grade)
	return &resp, nil
}

// ListGrades filters by whichever of studentID and examID is set.
func (s *gradeService) ListGrades(studentID string, examID uint) ([]dto.GradeResponse, error) {
	switch {
	case studentID != "" && examID != 0:
		grade, err := s.repo.FindByStudentAndExam(studentID, examID)
		if err != nil {
			return nil, err
		}
		if grade == nil {
			return []dto.GradeResponse{}, nil
		}
		return toGradeResponses([]model.Grade{*grade}), nil
	case studentID != "":
		grades, err := s.repo.FindByStudent(studentID)
		if err != nil {
			return nil, err
		}
		return toGradeResponses(grades), nil
	case examID != 0:
		grades, err := s.repo.FindByExam(examID)
		if err != nil {
			return nil, err
		}
		return toGradeResponses(grades), nil
	default:
		return nil, apperror.Validation("StudentId or ExamId is required")
	}
}

func (s *gradeService) DeleteGrade(id uint) error {
	return s.repo.Delete(id)
}
