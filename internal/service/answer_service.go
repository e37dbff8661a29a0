package service

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"edu_assessment_backend/internal/grading"
	"edu_assessment_backend/internal/model"
	"edu_assessment_backend/internal/repository"
	"edu_assessment_backend/internal/util"
	"edu_assessment_backend/pkg/monitoring"

	"gorm.io/gorm"
)

type AnswerService struct {
	AttemptRepo  *repository.AttemptRepository
	QuestionRepo *repository.QuestionRepository
	AnswerRepo   *repository.AnswerRepository
	SetRepo      *repository.QuestionSetRepository
	Engine       *grading.Engine
	Cache        *VizCache
}

func NewAnswerService(
	attemptRepo *repository.AttemptRepository,
	questionRepo *repository.QuestionRepository,
	answerRepo *repository.AnswerRepository,
	setRepo *repository.QuestionSetRepository,
	engine *grading.Engine,
	cache *VizCache,
) *AnswerService {
	return &AnswerService{
		AttemptRepo:  attemptRepo,
		QuestionRepo: questionRepo,
		AnswerRepo:   answerRepo,
		SetRepo:      setRepo,
		Engine:       engine,
		Cache:        cache,
	}
}

type AnswerRequest struct {
	AttemptID     uint                `json:"attemptId" binding:"required"`
	QuestionID    uint                `json:"questionId" binding:"required"`
	StartDatetime time.Time           `json:"startDatetime" binding:"required"`
	EndDatetime   time.Time           `json:"endDatetime" binding:"required"`
	Payload       model.AnswerPayload `json:"payload"`
}

// Submit writes one answer and grades it synchronously; validity is stamped
// before the row is stored. Answers are immutable: re-answering a question
// inside the same attempt conflicts, and complete attempts accept nothing.
func (s *AnswerService) Submit(viewer *util.Claims, req AnswerRequest) (*model.Answer, error) {
	if viewer.Role != model.Student {
		return nil, util.NewPermissionError("only students submit answers")
	}
	attempt, err := s.AttemptRepo.FindByID(req.AttemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError("attempt not found")
		}
		return nil, util.NewStoreError(err)
	}
	if attempt.Access == nil || attempt.Access.StudentID != viewer.UserID {
		return nil, util.NewNotFoundError("attempt not found")
	}
	if attempt.Complete {
		return nil, util.NewConflictError("attempt is complete; answers are immutable")
	}

	question, err := s.QuestionRepo.FindByID(req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError("question not found")
		}
		return nil, util.NewStoreError(err)
	}
	if question.QuestionSetID == nil || *question.QuestionSetID != attempt.Access.QuestionSetID {
		return nil, util.NewValidationError("question does not belong to the attempt's question set", nil)
	}
	if req.EndDatetime.Before(req.StartDatetime) {
		return nil, util.NewValidationError("endDatetime precedes startDatetime", map[string]string{"endDatetime": "must not precede startDatetime"})
	}

	if _, err := s.AnswerRepo.FindByAttemptAndQuestion(attempt.ID, question.ID); err == nil {
		return nil, util.NewConflictError("question already answered in this attempt")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewStoreError(err)
	}

	payloadJSON, err := json.Marshal(req.Payload)
	if err != nil {
		return nil, util.NewValidationError("malformed payload", nil)
	}

	questionID := question.ID
	answer := &model.Answer{
		AttemptID:     attempt.ID,
		QuestionID:    &questionID,
		AnswerType:    question.QuestionType,
		Valid:         s.Engine.Grade(question, &req.Payload),
		StartDatetime: req.StartDatetime,
		EndDatetime:   req.EndDatetime,
		Payload:       payloadJSON,
	}
	if err := s.AnswerRepo.Create(answer); err != nil {
		return nil, util.NewStoreError(err)
	}
	monitoring.AnswersGraded.WithLabelValues(string(answer.AnswerType), strconv.FormatBool(answer.Valid)).Inc()
	s.invalidateAggregates(attempt.Access.QuestionSetID)
	return answer, nil
}

// invalidateAggregates drops the memoised visualization aggregates touching
// the set; best effort, the cache TTL backstops a failed lookup.
func (s *AnswerService) invalidateAggregates(setID uint) {
	set, err := s.SetRepo.FindByID(setID)
	if err != nil {
		return
	}
	s.Cache.InvalidateSet(set.ID, set.AssessmentID)
}

// ListByAttempt returns the student's own answers for an attempt.
func (s *AnswerService) ListByAttempt(viewer *util.Claims, attemptID uint) ([]model.Answer, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError("attempt not found")
		}
		return nil, util.NewStoreError(err)
	}
	if viewer.Role == model.Student && (attempt.Access == nil || attempt.Access.StudentID != viewer.UserID) {
		return nil, util.NewNotFoundError("attempt not found")
	}
	answers, err := s.AnswerRepo.ListByAttempt(attemptID)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	return answers, nil
}
