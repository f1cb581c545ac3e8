package repository

import (
	"errors"
	"testing"

	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/model"
	"github.com/lshigami/examhub/internal/testutil"
)

func TestClassEnrollment(t *testing.T) {
	db := testutil.Tx(t, testutil.DB(t))
	repo := NewClassRepository(db)

	class := &model.Class{ClassID: "C1", CourseName: "Math", TeacherEmail: "t@x.com", Students: []model.ClassStudent{
		{ClassID: "C1", StudentID: "s1"}, {ClassID: "C1", StudentID: "s2"},
	}}
	if err := repo.Create(class); err != nil {
		t.Fatal(err)
	}
	if err := repo.Create(&model.Class{ClassID: "C1", TeacherEmail: "t@x.com"}); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("duplicate class err = %v", err)
	}

	got, err := repo.FindByID("C1")
	if err != nil {
		t.Fatal(err)
	}
	if ids := got.StudentIDs(); len(ids) != 2 {
		t.Fatalf("StudentIDs = %v", ids)
	}

	if err := repo.ReplaceStudents("C1", []string{"s3"}); err != nil {
		t.Fatal(err)
	}
	got, _ = repo.FindByID("C1")
	if ids := got.StudentIDs(); len(ids) != 1 || ids[0] != "s3" {
		t.Fatalf("after replace StudentIDs = %v", ids)
	}

	if classes, err := repo.FindByStudent("s3"); err != nil || len(classes) != 1 {
		t.Errorf("FindByStudent = %v, %v", classes, err)
	}
	if classes, err := repo.FindByStudent("s1"); err != nil || len(classes) != 0 {
		t.Errorf("FindByStudent(s1) = %v, %v", classes, err)
	}
	if classes, err := repo.FindByTeacher("t@x.com"); err != nil || len(classes) != 1 {
		t.Errorf("FindByTeacher = %v, %v", classes, err)
	}

	if err := repo.Delete("C1"); err != nil {
		t.Fatal(err)
	}
	if exists, _ := repo.Exists("C1"); exists {
		t.Error("class still exists")
	}
	var enrollments int64
	db.Model(&model.ClassStudent{}).Count(&enrollments)
	if enrollments != 0 {
		t.Errorf("%d enrollments left", enrollments)
	}
	if err := repo.Delete("C1"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second delete err = %v", err)
	}
}
