package service

import (
	"errors"
	"time"

	"edu_assessment_backend/internal/model"
	"edu_assessment_backend/internal/repository"
	"edu_assessment_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionSetService struct {
	AssessmentRepo *repository.AssessmentRepository
	SetRepo        *repository.QuestionSetRepository
	QuestionRepo   *repository.QuestionRepository
}

func NewQuestionSetService(
	assessmentRepo *repository.AssessmentRepository,
	setRepo *repository.QuestionSetRepository,
	questionRepo *repository.QuestionRepository,
) *QuestionSetService {
	return &QuestionSetService{
		AssessmentRepo: assessmentRepo,
		SetRepo:        setRepo,
		QuestionRepo:   questionRepo,
	}
}

type QuestionSetRequest struct {
	Name      string `json:"name" binding:"required"`
	Evaluated *bool  `json:"evaluated"`
}

func (s *QuestionSetService) Create(viewer *util.Claims, assessmentID uint, req QuestionSetRequest) (*model.QuestionSet, error) {
	if _, err := s.ownedAssessment(viewer, assessmentID); err != nil {
		return nil, err
	}
	max, err := s.SetRepo.MaxOrder(assessmentID)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	set := &model.QuestionSet{
		AssessmentID: assessmentID,
		Name:         req.Name,
		Order:        max + 1,
		Evaluated:    true,
	}
	if req.Evaluated != nil {
		set.Evaluated = *req.Evaluated
	}
	if err := s.SetRepo.Create(set); err != nil {
		return nil, util.NewStoreError(err)
	}
	return set, nil
}

// List scopes sets by role: supervisors see every set of a visible
// assessment, students only those with a currently valid access.
func (s *QuestionSetService) List(viewer *util.Claims, assessmentID uint) ([]model.QuestionSet, error) {
	switch viewer.Role {
	case model.Supervisor:
		a, err := s.AssessmentRepo.FindByID(assessmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.NewNotFoundError("assessment not found")
			}
			return nil, util.NewStoreError(err)
		}
		if a.CreatedByID != viewer.UserID && (a.Private || a.Archived) {
			return nil, util.NewNotFoundError("assessment not found")
		}
		sets, err := s.SetRepo.ListByAssessment(assessmentID)
		if err != nil {
			return nil, util.NewStoreError(err)
		}
		return sets, nil
	case model.Student:
		sets, err := s.SetRepo.ListStudentSets(viewer.UserID, assessmentID, time.Now())
		if err != nil {
			return nil, util.NewStoreError(err)
		}
		return sets, nil
	default:
		return []model.QuestionSet{}, nil
	}
}

func (s *QuestionSetService) Update(viewer *util.Claims, setID uint, req QuestionSetRequest) (*model.QuestionSet, error) {
	set, _, err := s.ownedSet(viewer, setID)
	if err != nil {
		return nil, err
	}
	set.Name = req.Name
	if req.Evaluated != nil {
		set.Evaluated = *req.Evaluated
	}
	if err := s.SetRepo.Update(set); err != nil {
		return nil, util.NewStoreError(err)
	}
	return set, nil
}

func (s *QuestionSetService) Delete(viewer *util.Claims, setID uint) error {
	set, _, err := s.ownedSet(viewer, setID)
	if err != nil {
		return err
	}
	if err := s.SetRepo.DeleteCascade(set); err != nil {
		return util.NewStoreError(err)
	}
	return nil
}

// Reorder atomically rewrites set orders to 1..N in the given id order. The
// id list must be a permutation of the assessment's sets, and the SEL
// placement rule must hold for the resulting first set.
func (s *QuestionSetService) Reorder(viewer *util.Claims, assessmentID uint, orderedIDs []uint) ([]model.QuestionSet, error) {
	a, err := s.ownedAssessment(viewer, assessmentID)
	if err != nil {
		return nil, err
	}
	current, err := s.SetRepo.ListByAssessment(assessmentID)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	currentIDs := make([]uint, len(current))
	for i, set := range current {
		currentIDs[i] = set.ID
	}
	if !IsPermutation(orderedIDs, currentIDs) {
		return nil, util.NewConflictError("ordered ids must be a permutation of the assessment's question sets")
	}

	if a.SELQuestion && len(orderedIDs) > 0 {
		selSetIDs, err := s.QuestionRepo.ListSELQuestionSetIDs(assessmentID)
		if err != nil {
			return nil, util.NewStoreError(err)
		}
		for _, setID := range selSetIDs {
			if setID != orderedIDs[0] {
				return nil, util.NewConflictError("SEL questions must stay in the first question set")
			}
		}
	}

	if err := s.SetRepo.Reorder(assessmentID, orderedIDs); err != nil {
		return nil, util.NewStoreError(err)
	}
	sets, err := s.SetRepo.ListByAssessment(assessmentID)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	return sets, nil
}

func (s *QuestionSetService) ownedAssessment(viewer *util.Claims, assessmentID uint) (*model.Assessment, error) {
	if viewer.Role != model.Supervisor {
		return nil, util.NewPermissionError("supervisor role required")
	}
	a, err := s.AssessmentRepo.FindByID(assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError("assessment not found")
		}
		return nil, util.NewStoreError(err)
	}
	if a.CreatedByID != viewer.UserID {
		return nil, util.NewPermissionError("not the assessment owner")
	}
	return a, nil
}

func (s *QuestionSetService) ownedSet(viewer *util.Claims, setID uint) (*model.QuestionSet, *model.Assessment, error) {
	set, err := s.SetRepo.FindByID(setID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.NewNotFoundError("question set not found")
		}
		return nil, nil, util.NewStoreError(err)
	}
	a, err := s.ownedAssessment(viewer, set.AssessmentID)
	if err != nil {
		return nil, nil, err
	}
	return set, a, nil
}

// IsPermutation reports whether a and b contain exactly the same ids.
func IsPermutation(a, b []uint) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[uint]int, len(a))
	for _, id := range a {
		seen[id]++
	}
	for _, id := range b {
		seen[id]--
		if seen[id] < 0 {
			return false
		}
	}
	for _, n := range seen {
		if n != 0 {
			return false
		}
	}
	return true
}
