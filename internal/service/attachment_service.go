package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"

	"edu_assessment_backend/internal/model"
	"edu_assessment_backend/internal/repository"
	"edu_assessment_backend/internal/util"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AttachmentService struct {
	AttachmentRepo *repository.AttachmentRepository
	QuestionRepo   *repository.QuestionRepository
	SetRepo        *repository.QuestionSetRepository
	AssessmentRepo *repository.AssessmentRepository
	Storage        *StorageService
}

func NewAttachmentService(
	attachmentRepo *repository.AttachmentRepository,
	questionRepo *repository.QuestionRepository,
	setRepo *repository.QuestionSetRepository,
	assessmentRepo *repository.AssessmentRepository,
	storage *StorageService,
) *AttachmentService {
	return &AttachmentService{
		AttachmentRepo: attachmentRepo,
		QuestionRepo:   questionRepo,
		SetRepo:        setRepo,
		AssessmentRepo: assessmentRepo,
		Storage:        storage,
	}
}

type AttachmentRequest struct {
	Type              model.AttachmentType `json:"type" binding:"required"`
	Link              string               `json:"link"`
	QuestionID        *uint                `json:"questionId"`
	SelectOptionID    *uint                `json:"selectOptionId"`
	DraggableOptionID *uint                `json:"draggableOptionId"`
	QuestionSetID     *uint                `json:"questionSetId"`
	ForHint           bool                 `json:"forHint"`
}

// Create registers a link-only attachment (no uploaded binary).
func (s *AttachmentService) Create(viewer *util.Claims, req AttachmentRequest) (*model.Attachment, error) {
	if viewer.Role != model.Supervisor {
		return nil, util.NewPermissionError("supervisor role required")
	}
	attachment := &model.Attachment{
		Type:              req.Type,
		Link:              req.Link,
		QuestionID:        req.QuestionID,
		SelectOptionID:    req.SelectOptionID,
		DraggableOptionID: req.DraggableOptionID,
		QuestionSetID:     req.QuestionSetID,
		ForHint:           req.ForHint,
	}
	if err := s.validate(attachment); err != nil {
		return nil, err
	}
	if req.Link == "" {
		return nil, util.NewValidationError("link is required", map[string]string{"link": "required"})
	}
	if err := s.AttachmentRepo.Create(attachment); err != nil {
		return nil, util.NewStoreError(err)
	}
	return attachment, nil
}

// Upload stores a binary in the storage backend and registers it against a
// single parent.
func (s *AttachmentService) Upload(ctx context.Context, viewer *util.Claims, file *multipart.FileHeader, req AttachmentRequest) (*model.Attachment, error) {
	if viewer.Role != model.Supervisor {
		return nil, util.NewPermissionError("supervisor role required")
	}
	attachment := &model.Attachment{
		Type:              req.Type,
		QuestionID:        req.QuestionID,
		SelectOptionID:    req.SelectOptionID,
		DraggableOptionID: req.DraggableOptionID,
		QuestionSetID:     req.QuestionSetID,
		ForHint:           req.ForHint,
	}
	if err := s.validate(attachment); err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, util.NewValidationError("unreadable upload", nil)
	}
	defer src.Close()

	objectKey := fmt.Sprintf("attachments/%d/%s%s",
		time.Now().Year(), uuid.NewString(), filepath.Ext(file.Filename))
	link, err := s.Storage.Upload(ctx, objectKey, src, file.Size, file.Header.Get("Content-Type"))
	if err != nil {
		return nil, util.NewStoreError(err)
	}

	attachment.ObjectKey = objectKey
	attachment.Link = link
	if err := s.AttachmentRepo.Create(attachment); err != nil {
		// Best effort: do not leave an orphaned object behind.
		_ = s.Storage.Delete(ctx, objectKey)
		return nil, util.NewStoreError(err)
	}
	return attachment, nil
}

func (s *AttachmentService) Delete(ctx context.Context, viewer *util.Claims, id uint) error {
	if viewer.Role != model.Supervisor {
		return util.NewPermissionError("supervisor role required")
	}
	attachment, err := s.AttachmentRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NewNotFoundError("attachment not found")
		}
		return util.NewStoreError(err)
	}
	if err := s.AttachmentRepo.Delete(id); err != nil {
		return util.NewStoreError(err)
	}
	if attachment.ObjectKey != "" {
		_ = s.Storage.Delete(ctx, attachment.ObjectKey)
	}
	return nil
}

func (s *AttachmentService) ListByQuestion(questionID uint) ([]model.Attachment, error) {
	attachments, err := s.AttachmentRepo.ListByQuestion(questionID)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	return attachments, nil
}

// validate enforces the single-parent rule and, for hint attachments, that
// the parent is a question.
func (s *AttachmentService) validate(a *model.Attachment) error {
	if a.Type != model.AttachmentImage && a.Type != model.AttachmentAudio {
		return util.NewValidationError("unsupported attachment type", map[string]string{"type": "must be image or audio"})
	}
	if a.ParentCount() != 1 {
		return util.NewValidationError("attachment needs exactly one parent", nil)
	}
	if a.ForHint && a.QuestionID == nil {
		return util.NewValidationError("hint attachments belong to a question", nil)
	}
	if a.QuestionID != nil {
		if _, err := s.QuestionRepo.FindByID(*a.QuestionID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.NewNotFoundError("question not found")
			}
			return util.NewStoreError(err)
		}
	}
	if a.QuestionSetID != nil {
		if _, err := s.SetRepo.FindByID(*a.QuestionSetID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.NewNotFoundError("question set not found")
			}
			return util.NewStoreError(err)
		}
	}
	return nil
}
