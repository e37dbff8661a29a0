package service

import (
	"errors"
	"time"

	"edu_assessment_backend/internal/model"
	"edu_assessment_backend/internal/repository"
	"edu_assessment_backend/internal/util"

	"gorm.io/gorm"
)

const accessDateLayout = "2006-01-02"

type AccessService struct {
	UserRepo       *repository.UserRepository
	AssessmentRepo *repository.AssessmentRepository
	SetRepo        *repository.QuestionSetRepository
	AccessRepo     *repository.AccessRepository
}

func NewAccessService(
	userRepo *repository.UserRepository,
	assessmentRepo *repository.AssessmentRepository,
	setRepo *repository.QuestionSetRepository,
	accessRepo *repository.AccessRepository,
) *AccessService {
	return &AccessService{
		UserRepo:       userRepo,
		AssessmentRepo: assessmentRepo,
		SetRepo:        setRepo,
		AccessRepo:     accessRepo,
	}
}

type AccessGrantItem struct {
	QuestionSetID uint   `json:"question_set" binding:"required"`
	StartDate     string `json:"start_date" binding:"required"`
	EndDate       string `json:"end_date" binding:"required"`
}

type BulkGrantRequest struct {
	Students []uint            `json:"students" binding:"required,min=1"`
	Accesses []AccessGrantItem `json:"accesses" binding:"required,min=1"`
}

type RejectedGrant struct {
	QuestionSetID uint   `json:"questionSetId"`
	Reason        string `json:"reason"`
}

type BulkGrantResult struct {
	Created  int             `json:"created"`
	Updated  int             `json:"updated"`
	Rejected []RejectedGrant `json:"rejected"`
}

// BulkGrant upserts accesses for every (student, set) pair. The grant
// succeeds as a whole while individual sets can be rejected; a set with no
// questions is rejected, a set outside the supervisor's reach fails the
// call. Idempotent per pair: dates are replaced on re-grant.
func (s *AccessService) BulkGrant(viewer *util.Claims, req BulkGrantRequest) (*BulkGrantResult, error) {
	if viewer.Role != model.Supervisor {
		return nil, util.NewPermissionError("only supervisors grant access")
	}

	students, err := s.UserRepo.FindStudentsByIDs(req.Students)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	owned := map[uint]bool{}
	for _, st := range students {
		if st.CreatedByID != nil && *st.CreatedByID == viewer.UserID {
			owned[st.ID] = true
		}
	}
	for _, id := range req.Students {
		if !owned[id] {
			return nil, util.NewPermissionError("student not owned by supervisor")
		}
	}

	result := &BulkGrantResult{Rejected: []RejectedGrant{}}
	var rows []model.QuestionSetAccess
	for _, item := range req.Accesses {
		start, err := time.Parse(accessDateLayout, item.StartDate)
		if err != nil {
			return nil, util.NewValidationError("invalid start_date", map[string]string{"start_date": "expected YYYY-MM-DD"})
		}
		end, err := time.Parse(accessDateLayout, item.EndDate)
		if err != nil {
			return nil, util.NewValidationError("invalid end_date", map[string]string{"end_date": "expected YYYY-MM-DD"})
		}
		if end.Before(start) {
			return nil, util.NewValidationError("end_date before start_date", map[string]string{"end_date": "must not precede start_date"})
		}

		set, err := s.SetRepo.FindByID(item.QuestionSetID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.NewNotFoundError("question set not found")
			}
			return nil, util.NewStoreError(err)
		}
		assessment, err := s.AssessmentRepo.FindByID(set.AssessmentID)
		if err != nil {
			return nil, util.NewStoreError(err)
		}
		if assessment.CreatedByID != viewer.UserID && assessment.Private {
			return nil, util.NewPermissionError("assessment is neither owned nor public")
		}

		count, err := s.SetRepo.CountQuestions(set.ID)
		if err != nil {
			return nil, util.NewStoreError(err)
		}
		if count == 0 {
			result.Rejected = append(result.Rejected, RejectedGrant{
				QuestionSetID: set.ID,
				Reason:        "question set has no questions",
			})
			continue
		}

		for _, studentID := range req.Students {
			rows = append(rows, model.QuestionSetAccess{
				StudentID:     studentID,
				QuestionSetID: set.ID,
				StartDate:     start,
				EndDate:       end,
			})
		}
	}

	created, updated, err := s.AccessRepo.BulkUpsert(rows)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	result.Created = created
	result.Updated = updated
	return result, nil
}

// ListOwn returns the student's accesses with a validity flag for today.
func (s *AccessService) ListOwn(viewer *util.Claims) ([]AccessView, error) {
	if viewer.Role != model.Student {
		return []AccessView{}, nil
	}
	accesses, err := s.AccessRepo.ListByStudent(viewer.UserID)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	now := time.Now()
	views := make([]AccessView, 0, len(accesses))
	for _, a := range accesses {
		views = append(views, AccessView{
			QuestionSetAccess: a,
			Active:            a.ValidOn(now),
		})
	}
	return views, nil
}

type AccessView struct {
	model.QuestionSetAccess
	Active bool `json:"active"`
}
