package service

import (
	"errors"
	"time"

	"edu_assessment_backend/internal/model"
	"edu_assessment_backend/internal/repository"
	"edu_assessment_backend/internal/util"

	"gorm.io/gorm"
)

type AssessmentService struct {
	AssessmentRepo *repository.AssessmentRepository
	SetRepo        *repository.QuestionSetRepository
}

func NewAssessmentService(assessmentRepo *repository.AssessmentRepository, setRepo *repository.QuestionSetRepository) *AssessmentService {
	return &AssessmentService{AssessmentRepo: assessmentRepo, SetRepo: setRepo}
}

type AssessmentRequest struct {
	Title        string        `json:"title" binding:"required"`
	Grade        int           `json:"grade"`
	Subject      model.Subject `json:"subject" binding:"required"`
	LanguageCode string        `json:"languageCode" binding:"required,max=3"`
	CountryCode  string        `json:"countryCode" binding:"required,max=3"`
	Private      bool          `json:"private"`
	SELQuestion  bool          `json:"selQuestion"`
}

type AssessmentUpdateRequest struct {
	Title        *string        `json:"title"`
	Grade        *int           `json:"grade"`
	Subject      *model.Subject `json:"subject"`
	LanguageCode *string        `json:"languageCode"`
	CountryCode  *string        `json:"countryCode"`
	Private      *bool          `json:"private"`
	Archived     *bool          `json:"archived"`
	SELQuestion  *bool          `json:"selQuestion"`
}

func (s *AssessmentService) Create(viewer *util.Claims, req AssessmentRequest) (*model.Assessment, error) {
	if viewer.Role != model.Supervisor {
		return nil, util.NewPermissionError("only supervisors create assessments")
	}
	a := &model.Assessment{
		Title:        req.Title,
		Grade:        req.Grade,
		Subject:      req.Subject,
		LanguageCode: req.LanguageCode,
		CountryCode:  req.CountryCode,
		Private:      req.Private,
		SELQuestion:  req.SELQuestion,
		CreatedByID:  viewer.UserID,
	}
	if err := s.AssessmentRepo.Create(a); err != nil {
		return nil, util.NewStoreError(err)
	}
	return a, nil
}

// List scopes by role: supervisors see owned plus public, students see what
// a currently valid access reaches. Any other situation yields empty, not
// an error.
func (s *AssessmentService) List(viewer *util.Claims) ([]model.Assessment, error) {
	switch viewer.Role {
	case model.Supervisor:
		out, err := s.AssessmentRepo.ListVisibleToSupervisor(viewer.UserID)
		if err != nil {
			return nil, util.NewStoreError(err)
		}
		return out, nil
	case model.Student:
		out, err := s.AssessmentRepo.ListForStudent(viewer.UserID, time.Now())
		if err != nil {
			return nil, util.NewStoreError(err)
		}
		return out, nil
	default:
		return []model.Assessment{}, nil
	}
}

func (s *AssessmentService) Get(viewer *util.Claims, id uint) (*model.Assessment, error) {
	a, err := s.AssessmentRepo.FindByIDWithSets(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError("assessment not found")
		}
		return nil, util.NewStoreError(err)
	}
	if err := s.checkVisible(viewer, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *AssessmentService) Update(viewer *util.Claims, id uint, req AssessmentUpdateRequest) (*model.Assessment, error) {
	a, err := s.getOwned(viewer, id)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		a.Title = *req.Title
	}
	if req.Grade != nil {
		a.Grade = *req.Grade
	}
	if req.Subject != nil {
		a.Subject = *req.Subject
	}
	if req.LanguageCode != nil {
		a.LanguageCode = *req.LanguageCode
	}
	if req.CountryCode != nil {
		a.CountryCode = *req.CountryCode
	}
	if req.Private != nil {
		a.Private = *req.Private
	}
	if req.Archived != nil {
		a.Archived = *req.Archived
	}
	if req.SELQuestion != nil {
		a.SELQuestion = *req.SELQuestion
	}
	if err := s.AssessmentRepo.Update(a); err != nil {
		return nil, util.NewStoreError(err)
	}
	return a, nil
}

func (s *AssessmentService) Delete(viewer *util.Claims, id uint) error {
	if _, err := s.getOwned(viewer, id); err != nil {
		return err
	}
	if err := s.AssessmentRepo.DeleteCascade(id); err != nil {
		return util.NewStoreError(err)
	}
	return nil
}

func (s *AssessmentService) Archive(viewer *util.Claims, id uint, archived bool) (*model.Assessment, error) {
	return s.Update(viewer, id, AssessmentUpdateRequest{Archived: &archived})
}

// getOwned loads an assessment for mutation; only the owner passes.
func (s *AssessmentService) getOwned(viewer *util.Claims, id uint) (*model.Assessment, error) {
	if viewer.Role != model.Supervisor {
		return nil, util.NewPermissionError("supervisor role required")
	}
	a, err := s.AssessmentRepo.FindByID(id)
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

// checkVisible implements the read predicate; invisible reads surface as
// not found so existence never leaks.
func (s *AssessmentService) checkVisible(viewer *util.Claims, a *model.Assessment) error {
	switch viewer.Role {
	case model.Supervisor:
		if a.CreatedByID == viewer.UserID {
			return nil
		}
		if !a.Private && !a.Archived {
			return nil
		}
	case model.Student:
		if a.Archived {
			break
		}
		sets, err := s.SetRepo.ListStudentSets(viewer.UserID, a.ID, time.Now())
		if err != nil {
			return util.NewStoreError(err)
		}
		if len(sets) > 0 {
			return nil
		}
	}
	return util.NewNotFoundError("assessment not found")
}
