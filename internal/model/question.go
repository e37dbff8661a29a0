package model

type QuestionType string

const (
	QuestionTypeInput                 QuestionType = "INPUT"
	QuestionTypeSelect                QuestionType = "SELECT"
	QuestionTypeSort                  QuestionType = "SORT"
	QuestionTypeNumberLine            QuestionType = "NUMBER_LINE"
	QuestionTypeDragAndDrop           QuestionType = "DRAG_AND_DROP"
	QuestionTypeFindHotspot           QuestionType = "FIND_HOTSPOT"
	QuestionTypeDomino                QuestionType = "DOMINO"
	QuestionTypeSEL                   QuestionType = "SEL"
	QuestionTypeCalcul                QuestionType = "CALCUL"
	QuestionTypeCustomizedDragAndDrop QuestionType = "CUSTOMIZED_DRAG_AND_DROP"
)

// KnownQuestionTypes is the closed variant set; anything else is rejected
// at authoring time.
var KnownQuestionTypes = map[QuestionType]bool{
	QuestionTypeInput:                 true,
	QuestionTypeSelect:                true,
	QuestionTypeSort:                  true,
	QuestionTypeNumberLine:            true,
	QuestionTypeDragAndDrop:           true,
	QuestionTypeFindHotspot:           true,
	QuestionTypeDomino:                true,
	QuestionTypeSEL:                   true,
	QuestionTypeCalcul:                true,
	QuestionTypeCustomizedDragAndDrop: true,
}

// CombinationRule values for CUSTOMIZED_DRAG_AND_DROP.
const (
	CombinationSum        = "sum"
	CombinationDifference = "difference"
	CombinationProduct    = "product"
)

// Question is the tagged variant: QuestionType discriminates, the variant
// scalar columns plus the owned option rows form the payload. GetQuestion
// always materialises the options for the concrete variant.
//
// swagger:model Question
type Question struct {
	BaseModel
	// Nullable so answers survive question deletion with a null reference.
	QuestionSetID     *uint        `gorm:"index;type:bigint unsigned" json:"questionSetId"`
	Order             int          `gorm:"column:order_num;default:0" json:"order"`
	Title             string       `gorm:"size:500" json:"title"`
	Hint              string       `gorm:"size:500" json:"hint,omitempty"`
	QuestionType      QuestionType `gorm:"size:50;index;not null" json:"questionType"`
	LearningObjective string       `gorm:"size:200" json:"learningObjective,omitempty"`
	NumberRange       string       `gorm:"size:50" json:"numberRange,omitempty"`

	// INPUT
	ValidAnswer string `gorm:"size:500" json:"validAnswer,omitempty"`

	// SELECT
	Multiple bool `gorm:"default:false" json:"multiple"`

	// SORT
	CategoryA string `gorm:"size:100" json:"categoryA,omitempty"`
	CategoryB string `gorm:"size:100" json:"categoryB,omitempty"`

	// NUMBER_LINE / CALCUL / CUSTOMIZED_DRAG_AND_DROP
	Start         float64 `json:"start,omitempty"`
	End           float64 `json:"end,omitempty"`
	Step          float64 `json:"step,omitempty"`
	ExpectedValue float64 `json:"expectedValue,omitempty"`
	ShowTicks     bool    `gorm:"default:true" json:"showTicks"`
	ShowNumbers   bool    `gorm:"default:true" json:"showNumbers"`

	CombinationRule string `gorm:"size:50" json:"combinationRule,omitempty"`

	SelectOptions    []SelectOption    `gorm:"foreignKey:QuestionID" json:"selectOptions,omitempty"`
	SortOptions      []SortOption      `gorm:"foreignKey:QuestionID" json:"sortOptions,omitempty"`
	AreaOptions      []AreaOption      `gorm:"foreignKey:QuestionID" json:"areaOptions,omitempty"`
	DraggableOptions []DraggableOption `gorm:"foreignKey:QuestionID" json:"draggableOptions,omitempty"`
	DominoOptions    []DominoOption    `gorm:"foreignKey:QuestionID" json:"dominoOptions,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

// swagger:model SelectOption
type SelectOption struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	Value      string `gorm:"size:500;not null" json:"value"`
	Valid      bool   `gorm:"default:false" json:"valid"`
}

func (SelectOption) TableName() string {
	return "select_options"
}

// swagger:model SortOption
type SortOption struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	Value      string `gorm:"size:500;not null" json:"value"`
	// Category is "A" or "B", matching the question's category names.
	Category string `gorm:"size:1;not null" json:"category"`
}

func (SortOption) TableName() string {
	return "sort_options"
}

// AreaOption is a drop zone (DRAG_AND_DROP) or a hotspot (FIND_HOTSPOT).
//
// swagger:model AreaOption
type AreaOption struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	Name       string `gorm:"size:200" json:"name"`
	Valid      bool   `gorm:"default:false" json:"valid"`
	// ExpectedDraggableID is the draggable a DRAG_AND_DROP area must receive.
	ExpectedDraggableID *uint `gorm:"type:bigint unsigned" json:"expectedDraggableId,omitempty"`
}

func (AreaOption) TableName() string {
	return "area_options"
}

// swagger:model DraggableOption
type DraggableOption struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	Value      string `gorm:"size:500;not null" json:"value"`
}

func (DraggableOption) TableName() string {
	return "draggable_options"
}

// swagger:model DominoOption
type DominoOption struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	LeftValue  int    `json:"leftValue"`
	RightValue int    `json:"rightValue"`
	Valid      bool   `gorm:"default:false" json:"valid"`
}

func (DominoOption) TableName() string {
	return "domino_options"
}

// IsSEL reports whether the question is a self-reflection question; SEL
// questions are excluded from scoring everywhere.
func (q *Question) IsSEL() bool {
	return q.QuestionType == QuestionTypeSEL
}
