package service

import (
	"strings"

	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/model"
	"github.com/lshigami/examhub/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type ClassService interface {
	CreateClass(req dto.ClassRequest) (*dto.ClassResponse, error)
	GetClass(classID string) (*dto.ClassResponse, error)
	ListClasses(teacherEmail, studentID string) ([]dto.ClassResponse, error)
	UpdateClass(classID string, req dto.ClassRequest) (*dto.ClassResponse, error)
	DeleteClass(classID string) error
}

type classService struct {
	repo          repository.ClassRepository
	userRepo      repository.UserRepository
	classExamRepo repository.ClassExamRepository
	questionRepo  repository.QuestionRepository
	answerRepo    repository.StudentAnswerRepository
	messageRepo   repository.MessageRepository
	db            *gorm.DB
}

func NewClassService(
	repo repository.ClassRepository,
	userRepo repository.UserRepository,
	classExamRepo repository.ClassExamRepository,
	questionRepo repository.QuestionRepository,
	answerRepo repository.StudentAnswerRepository,
	messageRepo repository.MessageRepository,
	db *gorm.DB,
) ClassService {
	return &classService{
		repo:          repo,
		userRepo:      userRepo,
		classExamRepo: classExamRepo,
		questionRepo:  questionRepo,
		answerRepo:    answerRepo,
		messageRepo:   messageRepo,
		db:            db,
	}
}

func toClassResponse(c *model.Class) dto.ClassResponse {
	return dto.ClassResponse{
		ClassID:      c.ClassID,
		CourseName:   c.CourseName,
		Description:  c.Description,
		TeacherEmail: c.TeacherEmail,
		StudentIDs:   c.StudentIDs(),
	}
}

// uniqueStudentIDs trims, drops blanks and keeps the first occurrence.
func uniqueStudentIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func (s *classService) checkTeacher(email string) (string, error) {
	teacher, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return "", err
	}
	if teacher.Role != model.RoleTeacher {
		return "", apperror.Validation("user %s is not a teacher", teacher.Email)
	}
	return teacher.Email, nil
}

func (s *classService) CreateClass(req dto.ClassRequest) (*dto.ClassResponse, error) {
	classID := strings.TrimSpace(req.ClassID)
	if classID == "" {
		return nil, apperror.Validation("ClassId is required")
	}
	exists, err := s.repo.Exists(classID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.Conflict("class %s already exists", classID)
	}
	teacherEmail, err := s.checkTeacher(req.TeacherEmail)
	if err != nil {
		return nil, err
	}

	class := &model.Class{
		ClassID:      classID,
		CourseName:   strings.TrimSpace(req.CourseName),
		Description:  textOrNil(req.Description),
		TeacherEmail: teacherEmail,
	}
	for _, sid := range uniqueStudentIDs(req.StudentIDs) {
		class.Students = append(class.Students, model.ClassStudent{ClassID: classID, StudentID: sid})
	}

	if err := s.repo.Create(class); err != nil {
		log.Error().Err(err).Str("classId", classID).Msg("Failed to create class")
		return nil, err
	}
	log.Info().Str("classId", classID).Int("students", len(class.Students)).Msg("Class created")
	resp := toClassResponse(class)
	return &resp, nil
}

func (s *classService) GetClass(classID string) (*dto.ClassResponse, error) {
	class, err := s.repo.FindByID(classID)
	if err != nil {
		return nil, err
	}
	resp := toClassResponse(class)
	return &resp, nil
}

// ListClasses filters by teacher when teacherEmail is set, else by student
// when studentID is set, else returns every class.
func (s *classService) ListClasses(teacherEmail, studentID string) ([]dto.ClassResponse, error) {
	var (
		classes []model.Class
		err     error
	)
	switch {
	case teacherEmail != "":
		classes, err = s.repo.FindByTeacher(strings.ToLower(strings.TrimSpace(teacherEmail)))
	case studentID != "":
		classes, err = s.repo.FindByStudent(strings.TrimSpace(studentID))
	default:
		classes, err = s.repo.FindAll()
	}
	if err != nil {
		return nil, err
	}

	resps := make([]dto.ClassResponse, 0, len(classes))
	for i := range classes {
		resps = append(resps, toClassResponse(&classes[i]))
	}
	return resps, nil
}

// UpdateClass replaces every field and the whole enrollment list.
func (s *classService) UpdateClass(classID string, req dto.ClassRequest) (*dto.ClassResponse, error) {
	if req.ClassID != "" && strings.TrimSpace(req.ClassID) != classID {
		return nil, apperror.Validation("ClassId in body does not match the path")
	}
	teacherEmail, err := s.checkTeacher(req.TeacherEmail)
	if err != nil {
		return nil, err
	}
	studentIDs := uniqueStudentIDs(req.StudentIDs)

	var updated *model.Class
	err = s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		class, err := repo.FindByID(classID)
		if err != nil {
			return err
		}
		class.CourseName = strings.TrimSpace(req.CourseName)
		class.Description = textOrNil(req.Description)
		class.TeacherEmail = teacherEmail
		if err := repo.Update(class); err != nil {
			return err
		}
		if err := repo.ReplaceStudents(classID, studentIDs); err != nil {
			return err
		}
		updated, err = repo.FindByID(classID)
		return err
	})
	if err != nil {
		log.Error().Err(err).Str("classId", classID).Msg("Failed to update class")
		return nil, err
	}
	resp := toClassResponse(updated)
	return &resp, nil
}

// DeleteClass removes the class with its messages, enrollment and every
// class exam chain rooted at it.
func (s *classService) DeleteClass(classID string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		exists, err := repo.Exists(classID)
		if err != nil {
			return err
		}
		if !exists {
			return apperror.NotFound("class %s not found", classID)
		}

		classExamIDs, err := s.classExamRepo.WithTx(tx).IDsByClassID(classID)
		if err != nil {
			return err
		}
		if err := deleteClassExamChains(tx, classExamIDs, s.answerRepo, s.questionRepo, s.classExamRepo); err != nil {
			return err
		}
		if err := s.messageRepo.WithTx(tx).DeleteByClassID(classID); err != nil {
			return err
		}
		return repo.Delete(classID)
	})
	if err != nil {
		log.Error().Err(err).Str("classId", classID).Msg("Failed to delete class")
		return err
	}
	log.Info().Str("classId", classID).Msg("Class deleted")
	return nil
}

// deleteClassExamChains removes answers, then questions, then the class exam
// links themselves. It must run inside tx.
func deleteClassExamChains(
	tx *gorm.DB,
	classExamIDs []uint,
	answers repository.StudentAnswerRepository,
	questions repository.QuestionRepository,
	classExams repository.ClassExamRepository,
) error {
	if len(classExamIDs) == 0 {
		return nil
	}
	if err := answers.WithTx(tx).DeleteByClassExamIDs(classExamIDs); err != nil {
		return err
	}
	if err := questions.WithTx(tx).DeleteByClassExamIDs(classExamIDs); err != nil {
		return err
	}
	return classExams.WithTx(tx).DeleteByIDs(classExamIDs)
}
