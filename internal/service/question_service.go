package service

import (
	"errors"
	"fmt"
	"time"

	"edu_assessment_backend/internal/model"
	"edu_assessment_backend/internal/repository"
	"edu_assessment_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionService struct {
	AssessmentRepo *repository.AssessmentRepository
	SetRepo        *repository.QuestionSetRepository
	QuestionRepo   *repository.QuestionRepository
	DB             *gorm.DB
}

func NewQuestionService(
	assessmentRepo *repository.AssessmentRepository,
	setRepo *repository.QuestionSetRepository,
	questionRepo *repository.QuestionRepository,
	db *gorm.DB,
) *QuestionService {
	return &QuestionService{
		AssessmentRepo: assessmentRepo,
		SetRepo:        setRepo,
		QuestionRepo:   questionRepo,
		DB:             db,
	}
}

type SelectOptionRequest struct {
	Value string `json:"value" binding:"required"`
	Valid bool   `json:"valid"`
}

type SortOptionRequest struct {
	Value    string `json:"value" binding:"required"`
	Category string `json:"category" binding:"required,oneof=A B"`
}

type DraggableOptionRequest struct {
	Value string `json:"value" binding:"required"`
}

// AreaOptionRequest references its expected draggable by index into the
// request's draggable list; ids do not exist yet at authoring time.
type AreaOptionRequest struct {
	Name              string `json:"name"`
	Valid             bool   `json:"valid"`
	ExpectedDraggable *int   `json:"expectedDraggable"`
}

type DominoOptionRequest struct {
	LeftValue  int  `json:"leftValue"`
	RightValue int  `json:"rightValue"`
	Valid      bool `json:"valid"`
}

type QuestionRequest struct {
	QuestionType      model.QuestionType `json:"questionType" binding:"required"`
	Title             string             `json:"title" binding:"required"`
	Hint              string             `json:"hint"`
	LearningObjective string             `json:"learningObjective"`
	NumberRange       string             `json:"numberRange"`

	ValidAnswer     string   `json:"validAnswer"`
	Multiple        bool     `json:"multiple"`
	CategoryA       string   `json:"categoryA"`
	CategoryB       string   `json:"categoryB"`
	Start           *float64 `json:"start"`
	End             *float64 `json:"end"`
	Step            *float64 `json:"step"`
	ExpectedValue   *float64 `json:"expectedValue"`
	ShowTicks       *bool    `json:"showTicks"`
	ShowNumbers     *bool    `json:"showNumbers"`
	CombinationRule string   `json:"combinationRule"`

	SelectOptions []SelectOptionRequest    `json:"selectOptions"`
	SortOptions   []SortOptionRequest      `json:"sortOptions"`
	Draggables    []DraggableOptionRequest `json:"draggables"`
	Areas         []AreaOptionRequest      `json:"areas"`
	DominoOptions []DominoOptionRequest    `json:"dominoOptions"`
}

// ValidateQuestionRequest checks the payload shape for the declared variant.
// An empty map means the payload is valid.
func ValidateQuestionRequest(req QuestionRequest) map[string]string {
	fields := map[string]string{}
	if !model.KnownQuestionTypes[req.QuestionType] {
		fields["questionType"] = "unknown question type"
		return fields
	}
	switch req.QuestionType {
	case model.QuestionTypeInput:
		if req.ValidAnswer == "" {
			fields["validAnswer"] = "required"
		}
	case model.QuestionTypeSelect:
		if len(req.SelectOptions) < 2 {
			fields["selectOptions"] = "at least 2 options required"
			break
		}
		valid := 0
		for _, o := range req.SelectOptions {
			if o.Valid {
				valid++
			}
		}
		if valid == 0 {
			fields["selectOptions"] = "at least one valid option required"
		} else if !req.Multiple && valid != 1 {
			fields["selectOptions"] = "single-choice questions need exactly one valid option"
		}
	case model.QuestionTypeSort:
		if req.CategoryA == "" {
			fields["categoryA"] = "required"
		}
		if req.CategoryB == "" {
			fields["categoryB"] = "required"
		}
		countA, countB := 0, 0
		for _, o := range req.SortOptions {
			switch o.Category {
			case "A":
				countA++
			case "B":
				countB++
			}
		}
		if countA == 0 || countB == 0 {
			fields["sortOptions"] = "each category needs at least one option"
		}
	case model.QuestionTypeNumberLine:
		if req.Start == nil || req.End == nil || req.Step == nil || req.ExpectedValue == nil {
			fields["numberLine"] = "start, end, step and expectedValue are required"
			break
		}
		if *req.Start >= *req.End {
			fields["start"] = "start must be less than end"
		}
		if *req.Step <= 0 {
			fields["step"] = "step must be positive"
		}
		if *req.ExpectedValue < *req.Start || *req.ExpectedValue > *req.End {
			fields["expectedValue"] = "expected value must lie within [start, end]"
		}
	case model.QuestionTypeDragAndDrop:
		if len(req.Areas) == 0 {
			fields["areas"] = "at least one area required"
		}
		if len(req.Draggables) == 0 {
			fields["draggables"] = "at least one draggable required"
		}
		for i, area := range req.Areas {
			if area.ExpectedDraggable == nil {
				fields["areas"] = fmt.Sprintf("area %d has no expected draggable", i)
				break
			}
			if *area.ExpectedDraggable < 0 || *area.ExpectedDraggable >= len(req.Draggables) {
				fields["areas"] = fmt.Sprintf("area %d references an unknown draggable", i)
				break
			}
		}
	case model.QuestionTypeFindHotspot:
		if len(req.Areas) == 0 {
			fields["areas"] = "at least one area required"
			break
		}
		valid := 0
		for _, a := range req.Areas {
			if a.Valid {
				valid++
			}
		}
		if valid == 0 {
			fields["areas"] = "at least one valid area required"
		}
	case model.QuestionTypeDomino:
		valid := 0
		for _, o := range req.DominoOptions {
			if o.Valid {
				valid++
			}
		}
		if len(req.DominoOptions) < 2 {
			fields["dominoOptions"] = "at least 2 options required"
		} else if valid != 1 {
			fields["dominoOptions"] = "exactly one option must be valid"
		}
	case model.QuestionTypeCalcul:
		if req.ExpectedValue == nil {
			fields["expectedValue"] = "required"
		}
	case model.QuestionTypeCustomizedDragAndDrop:
		switch req.CombinationRule {
		case "", model.CombinationSum, model.CombinationDifference, model.CombinationProduct:
		default:
			fields["combinationRule"] = "unknown combination rule"
		}
	}
	return fields
}

// Create validates and materialises a question in its set. SEL questions are
// only accepted when the assessment enables them and the set is first; they
// are inserted at the front, everything else appends.
func (s *QuestionService) Create(viewer *util.Claims, setID uint, req QuestionRequest) (*model.Question, error) {
	set, assessment, err := s.ownedSet(viewer, setID)
	if err != nil {
		return nil, err
	}
	if fields := ValidateQuestionRequest(req); len(fields) > 0 {
		return nil, util.NewValidationError("invalid question payload", fields)
	}
	if req.QuestionType == model.QuestionTypeSEL {
		if !assessment.SELQuestion {
			return nil, util.NewValidationError("assessment does not enable SEL questions", nil)
		}
		if set.Order != 1 {
			return nil, util.NewConflictError("SEL questions must live in the first question set")
		}
	}

	q := questionFromRequest(req)
	q.QuestionSetID = &setID

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if req.QuestionType == model.QuestionTypeSEL {
			// Shift siblings to keep SEL at the front.
			if err := tx.Model(&model.Question{}).Where("question_set_id = ?", setID).
				UpdateColumn("order_num", gorm.Expr("order_num + 1")).Error; err != nil {
				return err
			}
			q.Order = 1
		} else {
			var max int
			if err := tx.Model(&model.Question{}).Where("question_set_id = ?", setID).
				Select("COALESCE(MAX(order_num), 0)").Scan(&max).Error; err != nil {
				return err
			}
			q.Order = max + 1
		}
		if err := tx.Create(q).Error; err != nil {
			return err
		}
		return createAreas(tx, q, req.Areas)
	})
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	return s.getMaterialised(q.ID)
}

// createAreas resolves draggable indexes against the freshly created
// draggable rows, then writes the area rows.
func createAreas(tx *gorm.DB, q *model.Question, areas []AreaOptionRequest) error {
	if len(areas) == 0 {
		return nil
	}
	rows := make([]model.AreaOption, 0, len(areas))
	for _, area := range areas {
		row := model.AreaOption{
			QuestionID: q.ID,
			Name:       area.Name,
			Valid:      area.Valid,
		}
		if area.ExpectedDraggable != nil && *area.ExpectedDraggable < len(q.DraggableOptions) {
			id := q.DraggableOptions[*area.ExpectedDraggable].ID
			row.ExpectedDraggableID = &id
		}
		rows = append(rows, row)
	}
	return tx.Create(&rows).Error
}

func questionFromRequest(req QuestionRequest) *model.Question {
	q := &model.Question{
		Title:             req.Title,
		Hint:              req.Hint,
		QuestionType:      req.QuestionType,
		LearningObjective: req.LearningObjective,
		NumberRange:       req.NumberRange,
		ValidAnswer:       req.ValidAnswer,
		Multiple:          req.Multiple,
		CategoryA:         req.CategoryA,
		CategoryB:         req.CategoryB,
		CombinationRule:   req.CombinationRule,
		ShowTicks:         true,
		ShowNumbers:       true,
	}
	if req.QuestionType == model.QuestionTypeCustomizedDragAndDrop && q.CombinationRule == "" {
		q.CombinationRule = model.CombinationSum
	}
	if req.Start != nil {
		q.Start = *req.Start
	}
	if req.End != nil {
		q.End = *req.End
	}
	if req.Step != nil {
		q.Step = *req.Step
	}
	if req.ExpectedValue != nil {
		q.ExpectedValue = *req.ExpectedValue
	}
	if req.ShowTicks != nil {
		q.ShowTicks = *req.ShowTicks
	}
	if req.ShowNumbers != nil {
		q.ShowNumbers = *req.ShowNumbers
	}
	for _, o := range req.SelectOptions {
		q.SelectOptions = append(q.SelectOptions, model.SelectOption{Value: o.Value, Valid: o.Valid})
	}
	for _, o := range req.SortOptions {
		q.SortOptions = append(q.SortOptions, model.SortOption{Value: o.Value, Category: o.Category})
	}
	for _, o := range req.Draggables {
		q.DraggableOptions = append(q.DraggableOptions, model.DraggableOption{Value: o.Value})
	}
	for _, o := range req.DominoOptions {
		q.DominoOptions = append(q.DominoOptions, model.DominoOption{LeftValue: o.LeftValue, RightValue: o.RightValue, Valid: o.Valid})
	}
	return q
}

// List scopes a set's questions by role.
func (s *QuestionService) List(viewer *util.Claims, setID uint) ([]model.Question, error) {
	set, err := s.SetRepo.FindByID(setID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError("question set not found")
		}
		return nil, util.NewStoreError(err)
	}
	switch viewer.Role {
	case model.Supervisor:
		a, err := s.AssessmentRepo.FindByID(set.AssessmentID)
		if err != nil {
			return nil, util.NewStoreError(err)
		}
		if a.CreatedByID != viewer.UserID && (a.Private || a.Archived) {
			return nil, util.NewNotFoundError("question set not found")
		}
	case model.Student:
		visible, err := s.SetRepo.ListStudentSets(viewer.UserID, set.AssessmentID, time.Now())
		if err != nil {
			return nil, util.NewStoreError(err)
		}
		ok := false
		for _, v := range visible {
			if v.ID == setID {
				ok = true
				break
			}
		}
		if !ok {
			return nil, util.NewNotFoundError("question set not found")
		}
	default:
		return []model.Question{}, nil
	}
	questions, err := s.QuestionRepo.ListBySet(setID)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	return questions, nil
}

// Update re-validates and re-materialises the question. A type change drops
// the old variant's subrecords before writing the new payload.
func (s *QuestionService) Update(viewer *util.Claims, questionID uint, req QuestionRequest) (*model.Question, error) {
	existing, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError("question not found")
		}
		return nil, util.NewStoreError(err)
	}
	if existing.QuestionSetID == nil {
		return nil, util.NewNotFoundError("question not found")
	}
	set, assessment, err := s.ownedSet(viewer, *existing.QuestionSetID)
	if err != nil {
		return nil, err
	}
	if fields := ValidateQuestionRequest(req); len(fields) > 0 {
		return nil, util.NewValidationError("invalid question payload", fields)
	}
	if req.QuestionType == model.QuestionTypeSEL {
		if !assessment.SELQuestion {
			return nil, util.NewValidationError("assessment does not enable SEL questions", nil)
		}
		if set.Order != 1 {
			return nil, util.NewConflictError("SEL questions must live in the first question set")
		}
	}

	q := questionFromRequest(req)
	q.ID = existing.ID
	q.QuestionSetID = existing.QuestionSetID
	q.Order = existing.Order
	q.CreatedAt = existing.CreatedAt

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if selPromoted(existing.QuestionType, req.QuestionType) {
			// Shift earlier siblings down so the promoted question takes the front.
			if err := tx.Model(&model.Question{}).
				Where("question_set_id = ? AND order_num < ?", *existing.QuestionSetID, existing.Order).
				UpdateColumn("order_num", gorm.Expr("order_num + 1")).Error; err != nil {
				return err
			}
			q.Order = 1
		}
		if err := s.QuestionRepo.DeleteVariantSubrecords(tx, q.ID); err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(q).Error; err != nil {
			return err
		}
		return createAreas(tx, q, req.Areas)
	})
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	return s.getMaterialised(q.ID)
}

func (s *QuestionService) Delete(viewer *util.Claims, questionID uint) error {
	q, err := s.QuestionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NewNotFoundError("question not found")
		}
		return util.NewStoreError(err)
	}
	if q.QuestionSetID == nil {
		return util.NewNotFoundError("question not found")
	}
	if _, _, err := s.ownedSet(viewer, *q.QuestionSetID); err != nil {
		return err
	}
	if err := s.QuestionRepo.Delete(questionID); err != nil {
		return util.NewStoreError(err)
	}
	return nil
}

// Reorder rewrites question orders to 1..N. When the assessment enables SEL
// and the set is first, SEL questions are force-moved to the front, keeping
// their relative order.
func (s *QuestionService) Reorder(viewer *util.Claims, setID uint, orderedIDs []uint) ([]model.Question, error) {
	set, assessment, err := s.ownedSet(viewer, setID)
	if err != nil {
		return nil, err
	}
	questions, err := s.QuestionRepo.ListBySet(setID)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	currentIDs := make([]uint, len(questions))
	types := make(map[uint]model.QuestionType, len(questions))
	for i, q := range questions {
		currentIDs[i] = q.ID
		types[q.ID] = q.QuestionType
	}
	if !IsPermutation(orderedIDs, currentIDs) {
		return nil, util.NewConflictError("ordered ids must be a permutation of the set's questions")
	}

	final := orderedIDs
	if assessment.SELQuestion && set.Order == 1 {
		final = ForceSELFirst(orderedIDs, func(id uint) bool {
			return types[id] == model.QuestionTypeSEL
		})
	}

	if err := s.QuestionRepo.Reorder(assessment.ID, setID, final); err != nil {
		return nil, util.NewStoreError(err)
	}
	out, err := s.QuestionRepo.ListBySet(setID)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	return out, nil
}

// selPromoted reports whether an update turns a question into an SEL one,
// which must move it to the front of its set like a fresh SEL insert.
func selPromoted(existing, updated model.QuestionType) bool {
	return updated == model.QuestionTypeSEL && existing != model.QuestionTypeSEL
}

// ForceSELFirst stably moves ids matching isSEL to the front.
func ForceSELFirst(ids []uint, isSEL func(uint) bool) []uint {
	front := make([]uint, 0, len(ids))
	rest := make([]uint, 0, len(ids))
	for _, id := range ids {
		if isSEL(id) {
			front = append(front, id)
		} else {
			rest = append(rest, id)
		}
	}
	return append(front, rest...)
}

func (s *QuestionService) getMaterialised(id uint) (*model.Question, error) {
	q, err := s.QuestionRepo.FindByID(id)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	return q, nil
}

func (s *QuestionService) ownedSet(viewer *util.Claims, setID uint) (*model.QuestionSet, *model.Assessment, error) {
	if viewer.Role != model.Supervisor {
		return nil, nil, util.NewPermissionError("supervisor role required")
	}
	set, err := s.SetRepo.FindByID(setID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.NewNotFoundError("question set not found")
		}
		return nil, nil, util.NewStoreError(err)
	}
	a, err := s.AssessmentRepo.FindByID(set.AssessmentID)
	if err != nil {
		return nil, nil, util.NewStoreError(err)
	}
	if a.CreatedByID != viewer.UserID {
		return nil, nil, util.NewPermissionError("not the assessment owner")
	}
	return set, a, nil
}
