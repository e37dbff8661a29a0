package repository

import (
	"time"

	"edu_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(s *model.AnswerSession) error {
	return r.DB.Create(s).Error
}

func (r *SessionRepository) FindByID(id uint) (*model.AnswerSession, error) {
	var s model.AnswerSession
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *SessionRepository) Close(id uint, endedAt time.Time) error {
	return r.DB.Model(&model.AnswerSession{}).Where("id = ?", id).
		Update("end_date", endedAt).Error
}

func (r *SessionRepository) ListByStudent(studentID uint) ([]model.AnswerSession, error) {
	var sessions []model.AnswerSession
	err := r.DB.Where("student_id = ?", studentID).Order("id ASC").Find(&sessions).Error
	return sessions, err
}
