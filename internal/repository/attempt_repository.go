package repository

import (
	"time"

	"edu_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(a *model.QuestionSetAnswer) error {
	return r.DB.Create(a).Error
}

func (r *AttemptRepository) FindByID(id uint) (*model.QuestionSetAnswer, error) {
	var a model.QuestionSetAnswer
	if err := r.DB.Preload("Access").First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// FindOpenByAccess returns the single open attempt of an access, if any.
// Callers opening attempts must hold the access row lock (LockForOpen) in
// the same transaction, or a racing open can slip past this lookup.
func (r *AttemptRepository) FindOpenByAccess(tx *gorm.DB, accessID uint) (*model.QuestionSetAnswer, error) {
	db := r.DB
	if tx != nil {
		db = tx
	}
	var a model.QuestionSetAnswer
	err := db.Where("access_id = ? AND complete = ?", accessID, false).
		Order("id ASC").First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByAccess returns attempts ordered by start date, ties broken by id;
// this ordering defines the attempt index.
func (r *AttemptRepository) ListByAccess(accessID uint) ([]model.QuestionSetAnswer, error) {
	var attempts []model.QuestionSetAnswer
	err := r.DB.Where("access_id = ?", accessID).
		Order("start_date ASC, id ASC").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListCompleteByAccess(accessID uint) ([]model.QuestionSetAnswer, error) {
	var attempts []model.QuestionSetAnswer
	err := r.DB.Where("access_id = ? AND complete = ?", accessID, true).
		Order("start_date ASC, id ASC").Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListCompleteByAccessIDs(accessIDs []uint) ([]model.QuestionSetAnswer, error) {
	var attempts []model.QuestionSetAnswer
	if len(accessIDs) == 0 {
		return attempts, nil
	}
	err := r.DB.Where("access_id IN ? AND complete = ?", accessIDs, true).
		Order("start_date ASC, id ASC").Find(&attempts).Error
	return attempts, err
}

// Complete performs the one-way completion transition.
func (r *AttemptRepository) Complete(attemptID uint, endedAt time.Time) error {
	return r.DB.Model(&model.QuestionSetAnswer{}).Where("id = ?", attemptID).
		Updates(map[string]interface{}{"complete": true, "end_date": endedAt}).Error
}

// CountCompletedSetsByStudent counts distinct sets where the student has at
// least one complete attempt.
func (r *AttemptRepository) CountCompletedSetsByStudent(studentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuestionSetAnswer{}).
		Joins("JOIN question_set_accesses ON question_set_accesses.id = question_set_answers.access_id").
		Where("question_set_accesses.student_id = ? AND question_set_answers.complete = ?", studentID, true).
		Distinct("question_set_accesses.question_set_id").
		Count(&count).Error
	return count, err
}

// Transaction exposes the store's transactional scope to the attempt
// service (open-attempt guard).
func (r *AttemptRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.DB.Transaction(fn)
}
