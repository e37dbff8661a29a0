// Package grading derives answer validity from (question, answer payload)
// pairs. It runs synchronously in the answer write path, is CPU-bound, and
// never errors: ill-formed input grades to valid=false.
package grading

import (
	"edu_assessment_backend/internal/model"
)

// Strategy grades one question variant.
type Strategy interface {
	Grade(q *model.Question, p model.AnswerPayload) bool
}

// Engine routes by question type to the matching strategy.
type Engine struct {
	strategies map[model.QuestionType]Strategy
}

// NewEngine installs the built-in strategies for the closed variant set.
func NewEngine() *Engine {
	return &Engine{
		strategies: map[model.QuestionType]Strategy{
			model.QuestionTypeInput:                 inputStrategy{},
			model.QuestionTypeSelect:                selectStrategy{},
			model.QuestionTypeSort:                  sortStrategy{},
			model.QuestionTypeNumberLine:            numberLineStrategy{},
			model.QuestionTypeDragAndDrop:           dragAndDropStrategy{},
			model.QuestionTypeFindHotspot:           findHotspotStrategy{},
			model.QuestionTypeDomino:                dominoStrategy{},
			model.QuestionTypeSEL:                   selStrategy{},
			model.QuestionTypeCalcul:                calculStrategy{},
			model.QuestionTypeCustomizedDragAndDrop: customizedDragAndDropStrategy{},
		},
	}
}

// Grade returns the validity of the payload for the question. A nil question
// (deleted and soft-nulled) or nil payload grades false; SEL always grades
// true. Grading the same inputs twice yields the same result.
func (e *Engine) Grade(q *model.Question, p *model.AnswerPayload) bool {
	if q == nil {
		return false
	}
	if q.QuestionType == model.QuestionTypeSEL {
		return true
	}
	if p == nil {
		return false
	}
	s, ok := e.strategies[q.QuestionType]
	if !ok {
		return false
	}
	return s.Grade(q, *p)
}

type inputStrategy struct{}

func (inputStrategy) Grade(q *model.Question, p model.AnswerPayload) bool {
	if p.Text == "" {
		return false
	}
	return Normalize(p.Text) == Normalize(q.ValidAnswer)
}

type selectStrategy struct{}

func (selectStrategy) Grade(q *model.Question, p model.AnswerPayload) bool {
	selected := toSet(p.SelectedOptionIDs)
	if q.Multiple {
		expected := map[uint]bool{}
		for _, o := range q.SelectOptions {
			if o.Valid {
				expected[o.ID] = true
			}
		}
		return setsEqual(selected, expected)
	}
	if len(selected) != 1 {
		return false
	}
	for _, o := range q.SelectOptions {
		if selected[o.ID] {
			return o.Valid
		}
	}
	return false
}

type sortStrategy struct{}

func (sortStrategy) Grade(q *model.Question, p model.AnswerPayload) bool {
	expectedA := map[uint]bool{}
	expectedB := map[uint]bool{}
	for _, o := range q.SortOptions {
		switch o.Category {
		case "A":
			expectedA[o.ID] = true
		case "B":
			expectedB[o.ID] = true
		}
	}
	return setsEqual(toSet(p.CategoryA), expectedA) && setsEqual(toSet(p.CategoryB), expectedB)
}

type numberLineStrategy struct{}

func (numberLineStrategy) Grade(q *model.Question, p model.AnswerPayload) bool {
	return p.Value != nil && *p.Value == q.ExpectedValue
}

type dragAndDropStrategy struct{}

func (dragAndDropStrategy) Grade(q *model.Question, p model.AnswerPayload) bool {
	chosen := make(map[uint]uint, len(p.AreaChoices))
	for _, c := range p.AreaChoices {
		chosen[c.AreaID] = c.DraggableID
	}
	for _, area := range q.AreaOptions {
		if area.ExpectedDraggableID == nil {
			return false
		}
		got, ok := chosen[area.ID]
		if !ok || got != *area.ExpectedDraggableID {
			return false
		}
	}
	return len(q.AreaOptions) > 0
}

type findHotspotStrategy struct{}

func (findHotspotStrategy) Grade(q *model.Question, p model.AnswerPayload) bool {
	expected := map[uint]bool{}
	for _, a := range q.AreaOptions {
		if a.Valid {
			expected[a.ID] = true
		}
	}
	return setsEqual(toSet(p.SelectedOptionIDs), expected)
}

type dominoStrategy struct{}

func (dominoStrategy) Grade(q *model.Question, p model.AnswerPayload) bool {
	if len(p.SelectedOptionIDs) != 1 {
		return false
	}
	for _, o := range q.DominoOptions {
		if o.ID == p.SelectedOptionIDs[0] {
			return o.Valid
		}
	}
	return false
}

type selStrategy struct{}

func (selStrategy) Grade(*model.Question, model.AnswerPayload) bool {
	return true
}

type calculStrategy struct{}

func (calculStrategy) Grade(q *model.Question, p model.AnswerPayload) bool {
	return p.Value != nil && *p.Value == q.ExpectedValue
}

type customizedDragAndDropStrategy struct{}

func (customizedDragAndDropStrategy) Grade(q *model.Question, p model.AnswerPayload) bool {
	if p.LeftValue == nil || p.RightValue == nil || p.FinalValue == nil {
		return false
	}
	var want float64
	switch q.CombinationRule {
	case model.CombinationDifference:
		want = *p.LeftValue - *p.RightValue
	case model.CombinationProduct:
		want = *p.LeftValue * *p.RightValue
	default: // sum
		want = *p.LeftValue + *p.RightValue
	}
	return *p.FinalValue == want
}
