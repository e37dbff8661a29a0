package repository

import (
	"errors"
	"time"

	"edu_assessment_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AccessRepository struct {
	DB *gorm.DB
}

func NewAccessRepository(db *gorm.DB) *AccessRepository {
	return &AccessRepository{DB: db}
}

func (r *AccessRepository) FindByID(id uint) (*model.QuestionSetAccess, error) {
	var a model.QuestionSetAccess
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// LockForOpen takes the access row lock inside tx (SELECT ... FOR UPDATE).
// Concurrent attempt opens on one access serialise on it, so the open-attempt
// lookup that follows sees any attempt a racing transaction created.
func (r *AccessRepository) LockForOpen(tx *gorm.DB, id uint) error {
	var a model.QuestionSetAccess
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&a, id).Error
}

func (r *AccessRepository) FindByStudentAndSet(studentID, setID uint) (*model.QuestionSetAccess, error) {
	var a model.QuestionSetAccess
	err := r.DB.Where("student_id = ? AND question_set_id = ?", studentID, setID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AccessRepository) ListByStudent(studentID uint) ([]model.QuestionSetAccess, error) {
	var accesses []model.QuestionSetAccess
	err := r.DB.Where("student_id = ?", studentID).Order("id ASC").Find(&accesses).Error
	return accesses, err
}

func (r *AccessRepository) ListBySet(setID uint) ([]model.QuestionSetAccess, error) {
	var accesses []model.QuestionSetAccess
	err := r.DB.Where("question_set_id = ?", setID).Order("id ASC").Find(&accesses).Error
	return accesses, err
}

func (r *AccessRepository) ListBySetAndStudents(setID uint, studentIDs []uint) ([]model.QuestionSetAccess, error) {
	var accesses []model.QuestionSetAccess
	if len(studentIDs) == 0 {
		return accesses, nil
	}
	err := r.DB.Where("question_set_id = ? AND student_id IN ?", setID, studentIDs).
		Order("id ASC").Find(&accesses).Error
	return accesses, err
}

// ListActiveBySet optionally restricts to windows covering the given day.
func (r *AccessRepository) ListActiveBySet(setID uint, day time.Time) ([]model.QuestionSetAccess, error) {
	var accesses []model.QuestionSetAccess
	err := r.DB.Where("question_set_id = ?", setID).
		Where("start_date <= ? AND end_date >= ?", day, day).
		Order("id ASC").Find(&accesses).Error
	return accesses, err
}

// ListActiveByStudent returns the student's accesses whose window covers
// the given day.
func (r *AccessRepository) ListActiveByStudent(studentID uint, day time.Time) ([]model.QuestionSetAccess, error) {
	var accesses []model.QuestionSetAccess
	err := r.DB.Where("student_id = ?", studentID).
		Where("start_date <= ? AND end_date >= ?", day, day).
		Order("id ASC").Find(&accesses).Error
	return accesses, err
}

// BulkUpsert writes the grant rows in one transaction, keyed on the unique
// (student, question_set) pair; existing rows get their dates replaced.
func (r *AccessRepository) BulkUpsert(rows []model.QuestionSetAccess) (created, updated int, err error) {
	err = r.DB.Transaction(func(tx *gorm.DB) error {
		for _, row := range rows {
			var existing model.QuestionSetAccess
			findErr := tx.Where("student_id = ? AND question_set_id = ?", row.StudentID, row.QuestionSetID).
				First(&existing).Error
			switch {
			case errors.Is(findErr, gorm.ErrRecordNotFound):
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
				created++
			case findErr != nil:
				return findErr
			default:
				existing.StartDate = row.StartDate
				existing.EndDate = row.EndDate
				if err := tx.Save(&existing).Error; err != nil {
					return err
				}
				updated++
			}
		}
		return nil
	})
	if err != nil {
		created, updated = 0, 0
	}
	return created, updated, err
}
