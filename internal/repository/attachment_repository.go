package repository

import (
	"edu_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type AttachmentRepository struct {
	DB *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{DB: db}
}

func (r *AttachmentRepository) Create(a *model.Attachment) error {
	return r.DB.Create(a).Error
}

func (r *AttachmentRepository) FindByID(id uint) (*model.Attachment, error) {
	var a model.Attachment
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AttachmentRepository) Delete(id uint) error {
	return r.DB.Delete(&model.Attachment{}, id).Error
}

func (r *AttachmentRepository) ListByQuestion(questionID uint) ([]model.Attachment, error) {
	var attachments []model.Attachment
	err := r.DB.Where("question_id = ?", questionID).Find(&attachments).Error
	return attachments, err
}
