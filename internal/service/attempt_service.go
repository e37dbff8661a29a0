package service

import (
	"errors"
	"time"

	"edu_assessment_backend/internal/model"
	"edu_assessment_backend/internal/repository"
	"edu_assessment_backend/internal/util"

	"gorm.io/gorm"
)

type AttemptService struct {
	SessionRepo *repository.SessionRepository
	AccessRepo  *repository.AccessRepository
	AttemptRepo *repository.AttemptRepository
	SetRepo     *repository.QuestionSetRepository
	Cache       *VizCache
}

func NewAttemptService(
	sessionRepo *repository.SessionRepository,
	accessRepo *repository.AccessRepository,
	attemptRepo *repository.AttemptRepository,
	setRepo *repository.QuestionSetRepository,
	cache *VizCache,
) *AttemptService {
	return &AttemptService{
		SessionRepo: sessionRepo,
		AccessRepo:  accessRepo,
		AttemptRepo: attemptRepo,
		SetRepo:     setRepo,
		Cache:       cache,
	}
}

// StartSession opens a sitting for the student.
func (s *AttemptService) StartSession(viewer *util.Claims) (*model.AnswerSession, error) {
	if viewer.Role != model.Student {
		return nil, util.NewPermissionError("only students open sessions")
	}
	session := &model.AnswerSession{
		StudentID: viewer.UserID,
		StartDate: time.Now(),
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, util.NewStoreError(err)
	}
	return session, nil
}

func (s *AttemptService) CloseSession(viewer *util.Claims, sessionID uint) error {
	session, err := s.ownSession(viewer, sessionID)
	if err != nil {
		return err
	}
	if session.EndDate != nil {
		return nil
	}
	if err := s.SessionRepo.Close(sessionID, time.Now()); err != nil {
		return util.NewStoreError(err)
	}
	return nil
}

type StartAttemptRequest struct {
	SessionID uint `json:"sessionId" binding:"required"`
	AccessID  uint `json:"accessId" binding:"required"`
}

// StartAttempt opens an attempt on an access valid today. An access holds at
// most one open attempt; a duplicate open returns the existing one unchanged.
// The open-attempt guard is serialised inside the store transaction.
func (s *AttemptService) StartAttempt(viewer *util.Claims, req StartAttemptRequest) (*model.QuestionSetAnswer, error) {
	if viewer.Role != model.Student {
		return nil, util.NewPermissionError("only students open attempts")
	}
	if _, err := s.ownSession(viewer, req.SessionID); err != nil {
		return nil, err
	}
	access, err := s.AccessRepo.FindByID(req.AccessID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError("access not found")
		}
		return nil, util.NewStoreError(err)
	}
	if access.StudentID != viewer.UserID {
		return nil, util.NewNotFoundError("access not found")
	}
	if !access.ValidOn(time.Now()) {
		return nil, util.NewPermissionError("access window is not active today")
	}

	var attempt *model.QuestionSetAnswer
	err = s.AttemptRepo.Transaction(func(tx *gorm.DB) error {
		opened, err := openAttempt(
			func() error { return s.AccessRepo.LockForOpen(tx, access.ID) },
			func() (*model.QuestionSetAnswer, error) { return s.AttemptRepo.FindOpenByAccess(tx, access.ID) },
			func(a *model.QuestionSetAnswer) error { return tx.Create(a).Error },
			req.SessionID, access.ID,
		)
		if err != nil {
			return err
		}
		attempt = opened
		return nil
	})
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	return attempt, nil
}

// openAttempt runs inside the store transaction. The access row lock comes
// first, so concurrent opens on one access serialise and the second caller
// sees the attempt the first one created.
func openAttempt(
	lockAccess func() error,
	findOpen func() (*model.QuestionSetAnswer, error),
	create func(*model.QuestionSetAnswer) error,
	sessionID, accessID uint,
) (*model.QuestionSetAnswer, error) {
	if err := lockAccess(); err != nil {
		return nil, err
	}
	existing, err := findOpen()
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	attempt := &model.QuestionSetAnswer{
		SessionID: sessionID,
		AccessID:  accessID,
		Complete:  false,
		StartDate: time.Now(),
	}
	if err := create(attempt); err != nil {
		return nil, err
	}
	return attempt, nil
}

// CompleteAttempt performs the one-way completion transition; completing an
// already complete attempt is a no-op.
func (s *AttemptService) CompleteAttempt(viewer *util.Claims, attemptID uint) (*model.QuestionSetAnswer, error) {
	attempt, err := s.ownAttempt(viewer, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Complete {
		return attempt, nil
	}
	if err := s.AttemptRepo.Complete(attemptID, time.Now()); err != nil {
		return nil, util.NewStoreError(err)
	}
	// The completed attempt enters the aggregates; drop the memoised ones.
	if set, err := s.SetRepo.FindByID(attempt.Access.QuestionSetID); err == nil {
		s.Cache.InvalidateSet(set.ID, set.AssessmentID)
	}
	return s.findAttempt(attemptID)
}

// AttemptIndex is the 1-based rank of the attempt among its access's
// attempts ordered by start date, ties broken by id.
func (s *AttemptService) AttemptIndex(viewer *util.Claims, attemptID uint) (int, error) {
	attempt, err := s.ownAttempt(viewer, attemptID)
	if err != nil {
		return 0, err
	}
	attempts, err := s.AttemptRepo.ListByAccess(attempt.AccessID)
	if err != nil {
		return 0, util.NewStoreError(err)
	}
	return IndexOfAttempt(attempts, attempt.ID), nil
}

// IndexOfAttempt computes the rank inside an already ordered attempt list.
func IndexOfAttempt(ordered []model.QuestionSetAnswer, attemptID uint) int {
	for i, a := range ordered {
		if a.ID == attemptID {
			return i + 1
		}
	}
	return 0
}

func (s *AttemptService) ownSession(viewer *util.Claims, sessionID uint) (*model.AnswerSession, error) {
	session, err := s.SessionRepo.FindByID(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError("session not found")
		}
		return nil, util.NewStoreError(err)
	}
	if session.StudentID != viewer.UserID {
		return nil, util.NewNotFoundError("session not found")
	}
	return session, nil
}

func (s *AttemptService) ownAttempt(viewer *util.Claims, attemptID uint) (*model.QuestionSetAnswer, error) {
	attempt, err := s.findAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Access == nil || attempt.Access.StudentID != viewer.UserID {
		return nil, util.NewNotFoundError("attempt not found")
	}
	return attempt, nil
}

func (s *AttemptService) findAttempt(attemptID uint) (*model.QuestionSetAnswer, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError("attempt not found")
		}
		return nil, util.NewStoreError(err)
	}
	return attempt, nil
}
