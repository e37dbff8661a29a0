package repository

import (
	"edu_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

func (r *AnswerRepository) Create(a *model.Answer) error {
	return r.DB.Create(a).Error
}

func (r *AnswerRepository) ListByAttempt(attemptID uint) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.Where("attempt_id = ?", attemptID).Order("id ASC").Find(&answers).Error
	return answers, err
}

func (r *AnswerRepository) ListByAttemptIDs(attemptIDs []uint) ([]model.Answer, error) {
	var answers []model.Answer
	if len(attemptIDs) == 0 {
		return answers, nil
	}
	err := r.DB.Where("attempt_id IN ?", attemptIDs).Order("id ASC").Find(&answers).Error
	return answers, err
}

func (r *AnswerRepository) FindByAttemptAndQuestion(attemptID, questionID uint) (*model.Answer, error) {
	var a model.Answer
	err := r.DB.Where("attempt_id = ? AND question_id = ?", attemptID, questionID).First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}
