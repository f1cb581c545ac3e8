package repository

import (
	"github.com/lshigami/examhub/internal/apperror"
	"github.com/lshigami/examhub/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ClassRepository interface {
	WithTx(tx *gorm.DB) ClassRepository
	Create(class *model.Class) error
	FindByID(classID string) (*model.Class, error)
	Exists(classID string) (bool, error)
	FindAll() ([]model.Class, error)
	FindByTeacher(email string) ([]model.Class, error)
	FindByStudent(studentID string) ([]model.Class, error)
	Update(class *model.Class) error
	ReplaceStudents(classID string, studentIDs []string) error
	Delete(classID string) error
}

type classRepository struct {
	db *gorm.DB
}

func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) WithTx(tx *gorm.DB) ClassRepository {
	return &classRepository{db: tx}
}

func (r *classRepository) Create(class *model.Class) error {
	return apperror.FromGorm(r.db.Create(class).Error, "class "+class.ClassID)
}

func (r *classRepository) FindByID(classID string) (*model.Class, error) {
	var class model.Class
	if err := r.db.Preload("Students").Where("class_id = ?", classID).First(&class).Error; err != nil {
		return nil, apperror.FromGorm(err, "class "+classID)
	}
	return &class, nil
}

func (r *classRepository) Exists(classID string) (bool, error) {
	var count int64
	if err := r.db.Model(&model.Class{}).Where("class_id = ?", classID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *classRepository) FindAll() ([]model.Class, error) {
	var classes []model.Class
	if err := r.db.Preload("Students").Order("class_id ASC").Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classRepository) FindByTeacher(email string) ([]model.Class, error) {
	var classes []model.Class
	if err := r.db.Preload("Students").Where("teacher_email = ?", email).Order("class_id ASC").Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

func (r *classRepository) FindByStudent(studentID string) ([]model.Class, error) {
	var classes []model.Class
	enrolled := r.db.Model(&model.ClassStudent{}).Select("class_id").Where("student_id = ?", studentID)
	if err := r.db.Preload("Students").Where("class_id IN (?)", enrolled).Order("class_id ASC").Find(&classes).Error; err != nil {
		return nil, err
	}
	return classes, nil
}

// Update writes the class columns only; enrollment goes through ReplaceStudents.
func (r *classRepository) Update(class *model.Class) error {
	return r.db.Omit(clause.Associations).Save(class).Error
}

func (r *classRepository) ReplaceStudents(classID string, studentIDs []string) error {
	if err := r.db.Where("class_id = ?", classID).Delete(&model.ClassStudent{}).Error; err != nil {
		return err
	}
	if len(studentIDs) == 0 {
		return nil
	}
	rows := make([]model.ClassStudent, 0, len(studentIDs))
	for _, id := range studentIDs {
		rows = append(rows, model.ClassStudent{ClassID: classID, StudentID: id})
	}
	return apperror.FromGorm(r.db.Create(&rows).Error, "enrollment")
}

func (r *classRepository) Delete(classID string) error {
	if err := r.db.Where("class_id = ?", classID).Delete(&model.ClassStudent{}).Error; err != nil {
		return err
	}
	res := r.db.Where("class_id = ?", classID).Delete(&model.Class{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("class %s not found", classID)
	}
	return nil
}
