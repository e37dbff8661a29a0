package model

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// SEL self-reflection statements.
const (
	SELNotReally = "NOT_REALLY"
	SELALittle   = "A_LITTLE"
	SELALot      = "A_LOT"
)

// Answer is the polymorphic student response. AnswerType mirrors the
// question's discriminator; Payload holds the variant response as JSON.
// QuestionID is nullable so a deleted question leaves the answer in place
// with a null reference.
//
// swagger:model Answer
type Answer struct {
	BaseModel
	AttemptID     uint           `gorm:"index;type:bigint unsigned" json:"attemptId"`
	QuestionID    *uint          `gorm:"index;type:bigint unsigned" json:"questionId"`
	AnswerType    QuestionType   `gorm:"size:50;not null" json:"answerType"`
	Valid         bool           `gorm:"default:false" json:"valid"`
	StartDatetime time.Time      `json:"startDatetime"`
	EndDatetime   time.Time      `json:"endDatetime"`
	Payload       datatypes.JSON `json:"payload"`
}

func (Answer) TableName() string {
	return "answers"
}

// AreaChoice is one drop-zone assignment in a DRAG_AND_DROP answer.
type AreaChoice struct {
	AreaID      uint `json:"areaId"`
	DraggableID uint `json:"draggableId"`
}

// AnswerPayload is the decoded union of all answer variants. Only the fields
// matching the answer type are set; grading reads nothing else.
type AnswerPayload struct {
	// INPUT
	Text string `json:"text,omitempty"`
	// SELECT (option ids), FIND_HOTSPOT (area ids), DOMINO (single option id)
	SelectedOptionIDs []uint `json:"selectedOptionIds,omitempty"`
	// NUMBER_LINE / CALCUL
	Value *float64 `json:"value,omitempty"`
	// SORT: option ids the student placed in each category
	CategoryA []uint `json:"categoryA,omitempty"`
	CategoryB []uint `json:"categoryB,omitempty"`
	// DRAG_AND_DROP
	AreaChoices []AreaChoice `json:"areaChoices,omitempty"`
	// CUSTOMIZED_DRAG_AND_DROP: the pair and the combined result
	LeftValue  *float64 `json:"leftValue,omitempty"`
	RightValue *float64 `json:"rightValue,omitempty"`
	FinalValue *float64 `json:"finalValue,omitempty"`
	// SEL
	SELStatement string `json:"selStatement,omitempty"`
}

// DecodePayload unmarshals the stored JSON payload. A missing or malformed
// payload decodes to nil, which grades to valid=false.
func (a *Answer) DecodePayload() *AnswerPayload {
	if len(a.Payload) == 0 {
		return nil
	}
	var p AnswerPayload
	if err := json.Unmarshal(a.Payload, &p); err != nil {
		return nil
	}
	return &p
}

// Duration is the answering time used by duration analytics.
func (a *Answer) Duration() time.Duration {
	return a.EndDatetime.Sub(a.StartDatetime)
}
