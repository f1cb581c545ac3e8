package service

import (
	"testing"

	"github.com/lshigami/examhub/internal/dto"
	"github.com/lshigami/examhub/internal/repository"
	"github.com/lshigami/examhub/internal/testutil"
	"gorm.io/gorm"
)

type testEnv struct {
	db *gorm.DB

	users      repository.UserRepository
	classes    repository.ClassRepository
	exams      repository.ExamRepository
	classExams repository.ClassExamRepository
	questions  repository.QuestionRepository
	answers    repository.StudentAnswerRepository
	grades     repository.GradeRepository
	messages   repository.MessageRepository

	userSvc      UserService
	classSvc     ClassService
	examSvc      ExamService
	classExamSvc ClassExamService
	questionSvc  QuestionService
	answerSvc    AnswerSubmissionService
	gradingSvc   GradingService
	gradeSvc     GradeService
	messageSvc   MessageService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.DB(t)

	e := &testEnv{
		db:         db,
		users:      repository.NewUserRepository(db),
		classes:    repository.NewClassRepository(db),
		exams:      repository.NewExamRepository(db),
		classExams: repository.NewClassExamRepository(db),
		questions:  repository.NewQuestionRepository(db),
		answers:    repository.NewStudentAnswerRepository(db),
		grades:     repository.NewGradeRepository(db),
		messages:   repository.NewMessageRepository(db),
	}
	e.userSvc = NewUserService(e.users)
	e.classSvc = NewClassService(e.classes, e.users, e.classExams, e.questions, e.answers, e.messages, db)
	e.examSvc = NewExamService(e.exams, e.classExams, e.questions, e.answers, e.grades, db)
	e.classExamSvc = NewClassExamService(e.classExams, e.classes, e.exams, e.questions, e.answers, db)
	e.questionSvc = NewQuestionService(e.questions, e.classExams, e.answers, db)
	e.answerSvc = NewAnswerSubmissionService(e.exams, e.classExams, e.questions, e.answers, db)
	e.gradingSvc = NewGradingService(e.answers, e.questions, e.exams, e.classExams, e.grades, NewKeyGrader(), db)
	e.gradeSvc = NewGradeService(e.grades, e.exams)
	e.messageSvc = NewMessageService(e.messages, e.classes)
	return e
}

type seeded struct {
	classID     string
	examID      uint
	classExamID uint
	questionID  string
}

// seedExam creates teacher t@x.com, class C1 with student s1, exam Midterm and
// one mc question "A,B,C,D" whose key is B.
func (e *testEnv) seedExam(t *testing.T) seeded {
	t.Helper()

	if _, err := e.userSvc.Register(dto.RegisterRequest{Email: "t@x.com", Password: "secret1", FullName: "Teacher", Role: "teacher"}); err != nil {
		t.Fatalf("register teacher: %v", err)
	}
	class, err := e.classSvc.CreateClass(dto.ClassRequest{ClassID: "C1", CourseName: "Math", TeacherEmail: "t@x.com", StudentIDs: []string{"s1"}})
	if err != nil {
		t.Fatalf("create class: %v", err)
	}
	exam, err := e.examSvc.CreateExam(dto.ExamRequest{Title: "Midterm", Date: "2025-06-01", CourseName: "Math", Time: "09:00"})
	if err != nil {
		t.Fatalf("create exam: %v", err)
	}
	ce, err := e.classExamSvc.CreateClassExam(dto.ClassExamRequest{ClassID: class.ClassID, ExamID: exam.ID})
	if err != nil {
		t.Fatalf("create class exam: %v", err)
	}
	q, err := e.questionSvc.CreateQuestion(dto.QuestionRequest{
		ClassExamID:   ce.ID,
		QuestionType:  "mc",
		QuestionText:  "Pick B",
		Options:       dto.FlexStrings{"A", "B", "C", "D"},
		CorrectAnswer: strPtr("B"),
	})
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	return seeded{classID: class.ClassID, examID: exam.ID, classExamID: ce.ID, questionID: q.ID}
}

func (e *testEnv) addQuestion(t *testing.T, req dto.QuestionRequest) string {
	t.Helper()
	q, err := e.questionSvc.CreateQuestion(req)
	if err != nil {
		t.Fatalf("create question: %v", err)
	}
	return q.ID
}

func countRows(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}
