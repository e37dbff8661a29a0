package grading

import (
	"testing"

	"edu_assessment_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f(v float64) *float64 { return &v }

func selectOption(id uint, valid bool) model.SelectOption {
	o := model.SelectOption{Valid: valid}
	o.ID = id
	return o
}

func sortOption(id uint, category string) model.SortOption {
	o := model.SortOption{Category: category}
	o.ID = id
	return o
}

func areaOption(id uint, valid bool, expected *uint) model.AreaOption {
	o := model.AreaOption{Valid: valid, ExpectedDraggableID: expected}
	o.ID = id
	return o
}

func dominoOption(id uint, valid bool) model.DominoOption {
	o := model.DominoOption{Valid: valid}
	o.ID = id
	return o
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "paris", Normalize("  Paris "))
	assert.Equal(t, "new york", Normalize("New   YORK"))
	assert.Equal(t, "", Normalize("   "))
	assert.Equal(t, Normalize("La   Seine "), Normalize("la seine"))
}

func TestGradeInput(t *testing.T) {
	engine := NewEngine()
	q := &model.Question{QuestionType: model.QuestionTypeInput, ValidAnswer: "Paris"}

	assert.True(t, engine.Grade(q, &model.AnswerPayload{Text: "  paris "}))
	assert.True(t, engine.Grade(q, &model.AnswerPayload{Text: "PARIS"}))
	assert.False(t, engine.Grade(q, &model.AnswerPayload{Text: "pariss"}))
	assert.False(t, engine.Grade(q, &model.AnswerPayload{}))
}

func TestGradeSelectSingle(t *testing.T) {
	engine := NewEngine()
	q := &model.Question{
		QuestionType: model.QuestionTypeSelect,
		SelectOptions: []model.SelectOption{
			selectOption(1, false),
			selectOption(2, true),
			selectOption(3, false),
		},
	}

	assert.True(t, engine.Grade(q, &model.AnswerPayload{SelectedOptionIDs: []uint{2}}))
	assert.False(t, engine.Grade(q, &model.AnswerPayload{SelectedOptionIDs: []uint{1}}))
	assert.False(t, engine.Grade(q, &model.AnswerPayload{SelectedOptionIDs: []uint{1, 2}}))
	assert.False(t, engine.Grade(q, &model.AnswerPayload{SelectedOptionIDs: []uint{}}))
	// Unknown option id never grades true.
	assert.False(t, engine.Grade(q, &model.AnswerPayload{SelectedOptionIDs: []uint{99}}))
}

func TestGradeSelectMultiple(t *testing.T) {
	engine := NewEngine()
	q := &model.Question{
		QuestionType: model.QuestionTypeSelect,
		Multiple:     true,
		SelectOptions: []model.SelectOption{
			selectOption(1, true),
			selectOption(2, true),
			selectOption(3, false),
		},
	}

	assert.True(t, engine.Grade(q, &model.AnswerPayload{SelectedOptionIDs: []uint{2, 1}}))
	assert.False(t, engine.Grade(q, &model.AnswerPayload{SelectedOptionIDs: []uint{1}}))
	assert.False(t, engine.Grade(q, &model.AnswerPayload{SelectedOptionIDs: []uint{1, 2, 3}}))
}

func TestGradeSort(t *testing.T) {
	engine := NewEngine()
	q := &model.Question{
		QuestionType: model.QuestionTypeSort,
		SortOptions: []model.SortOption{
			sortOption(1, "A"),
			sortOption(2, "A"),
			sortOption(3, "B"),
		},
	}

	assert.True(t, engine.Grade(q, &model.AnswerPayload{CategoryA: []uint{2, 1}, CategoryB: []uint{3}}))
	assert.False(t, engine.Grade(q, &model.AnswerPayload{CategoryA: []uint{1}, CategoryB: []uint{3, 2}}))
	assert.False(t, engine.Grade(q, &model.AnswerPayload{CategoryA: []uint{1, 2, 3}, CategoryB: []uint{}}))
}

func TestGradeNumberLineAndCalcul(t *testing.T) {
	engine := NewEngine()
	for _, qt := range []model.QuestionType{model.QuestionTypeNumberLine, model.QuestionTypeCalcul} {
		q := &model.Question{QuestionType: qt, ExpectedValue: 3.5}
		assert.True(t, engine.Grade(q, &model.AnswerPayload{Value: f(3.5)}), string(qt))
		assert.False(t, engine.Grade(q, &model.AnswerPayload{Value: f(3.0)}), string(qt))
		assert.False(t, engine.Grade(q, &model.AnswerPayload{}), string(qt))
	}
}

func TestGradeDragAndDrop(t *testing.T) {
	engine := NewEngine()
	d1, d2 := uint(10), uint(11)
	q := &model.Question{
		QuestionType: model.QuestionTypeDragAndDrop,
		AreaOptions: []model.AreaOption{
			areaOption(1, false, &d1),
			areaOption(2, false, &d2),
		},
	}

	assert.True(t, engine.Grade(q, &model.AnswerPayload{AreaChoices: []model.AreaChoice{
		{AreaID: 1, DraggableID: 10},
		{AreaID: 2, DraggableID: 11},
	}}))
	// One area wrong fails the whole question.
	assert.False(t, engine.Grade(q, &model.AnswerPayload{AreaChoices: []model.AreaChoice{
		{AreaID: 1, DraggableID: 10},
		{AreaID: 2, DraggableID: 10},
	}}))
	// A missing area fails.
	assert.False(t, engine.Grade(q, &model.AnswerPayload{AreaChoices: []model.AreaChoice{
		{AreaID: 1, DraggableID: 10},
	}}))

	empty := &model.Question{QuestionType: model.QuestionTypeDragAndDrop}
	assert.False(t, engine.Grade(empty, &model.AnswerPayload{}))
}

func TestGradeFindHotspot(t *testing.T) {
	engine := NewEngine()
	q := &model.Question{
		QuestionType: model.QuestionTypeFindHotspot,
		AreaOptions: []model.AreaOption{
			areaOption(1, true, nil),
			areaOption(2, false, nil),
			areaOption(3, true, nil),
		},
	}

	assert.True(t, engine.Grade(q, &model.AnswerPayload{SelectedOptionIDs: []uint{3, 1}}))
	assert.False(t, engine.Grade(q, &model.AnswerPayload{SelectedOptionIDs: []uint{1}}))
	assert.False(t, engine.Grade(q, &model.AnswerPayload{SelectedOptionIDs: []uint{1, 2, 3}}))
}

func TestGradeDomino(t *testing.T) {
	engine := NewEngine()
	q := &model.Question{
		QuestionType: model.QuestionTypeDomino,
		DominoOptions: []model.DominoOption{
			dominoOption(1, false),
			dominoOption(2, true),
		},
	}

	assert.True(t, engine.Grade(q, &model.AnswerPayload{SelectedOptionIDs: []uint{2}}))
	assert.False(t, engine.Grade(q, &model.AnswerPayload{SelectedOptionIDs: []uint{1}}))
	assert.False(t, engine.Grade(q, &model.AnswerPayload{SelectedOptionIDs: []uint{1, 2}}))
}

func TestGradeSELAlwaysValid(t *testing.T) {
	engine := NewEngine()
	q := &model.Question{QuestionType: model.QuestionTypeSEL}

	assert.True(t, engine.Grade(q, &model.AnswerPayload{SELStatement: model.SELALot}))
	assert.True(t, engine.Grade(q, &model.AnswerPayload{}))
	// Even a nil payload: SEL has no wrong answers.
	assert.True(t, engine.Grade(q, nil))
}

func TestGradeCustomizedDragAndDrop(t *testing.T) {
	engine := NewEngine()

	cases := []struct {
		rule  string
		left  float64
		right float64
		final float64
		want  bool
	}{
		{model.CombinationSum, 2, 3, 5, true},
		{model.CombinationSum, 2, 3, 6, false},
		{model.CombinationDifference, 7, 3, 4, true},
		{model.CombinationDifference, 7, 3, 10, false},
		{model.CombinationProduct, 4, 3, 12, true},
		{model.CombinationProduct, 4, 3, 7, false},
		// Empty rule defaults to sum.
		{"", 1, 1, 2, true},
	}
	for _, tc := range cases {
		q := &model.Question{QuestionType: model.QuestionTypeCustomizedDragAndDrop, CombinationRule: tc.rule}
		p := &model.AnswerPayload{LeftValue: f(tc.left), RightValue: f(tc.right), FinalValue: f(tc.final)}
		assert.Equal(t, tc.want, engine.Grade(q, p), "rule=%q %v?%v=%v", tc.rule, tc.left, tc.right, tc.final)
	}

	q := &model.Question{QuestionType: model.QuestionTypeCustomizedDragAndDrop}
	assert.False(t, engine.Grade(q, &model.AnswerPayload{LeftValue: f(1), RightValue: f(2)}))
}

func TestGradeDegenerateInputs(t *testing.T) {
	engine := NewEngine()

	assert.False(t, engine.Grade(nil, &model.AnswerPayload{Text: "x"}))
	assert.False(t, engine.Grade(&model.Question{QuestionType: model.QuestionTypeInput}, nil))
	assert.False(t, engine.Grade(&model.Question{QuestionType: "BOGUS"}, &model.AnswerPayload{}))
}

func TestGradeIsDeterministic(t *testing.T) {
	engine := NewEngine()
	q := &model.Question{QuestionType: model.QuestionTypeInput, ValidAnswer: "forty two"}
	p := &model.AnswerPayload{Text: " Forty   Two "}

	first := engine.Grade(q, p)
	require.True(t, first)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, engine.Grade(q, p))
	}
}
