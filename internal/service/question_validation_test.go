package service

import (
	"testing"

	"edu_assessment_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestValidateQuestionRequestUnknownType(t *testing.T) {
	fields := ValidateQuestionRequest(QuestionRequest{QuestionType: "RIDDLE"})
	assert.Contains(t, fields, "questionType")
}

func TestValidateInputQuestion(t *testing.T) {
	assert.Empty(t, ValidateQuestionRequest(QuestionRequest{
		QuestionType: model.QuestionTypeInput,
		Title:        "Capital of France",
		ValidAnswer:  "Paris",
	}))

	fields := ValidateQuestionRequest(QuestionRequest{
		QuestionType: model.QuestionTypeInput,
		Title:        "Capital of France",
	})
	assert.Contains(t, fields, "validAnswer")
}

func TestValidateSelectQuestion(t *testing.T) {
	// One option is too few.
	fields := ValidateQuestionRequest(QuestionRequest{
		QuestionType:  model.QuestionTypeSelect,
		SelectOptions: []SelectOptionRequest{{Value: "a", Valid: true}},
	})
	assert.Contains(t, fields, "selectOptions")

	// Single-choice needs exactly one valid option.
	fields = ValidateQuestionRequest(QuestionRequest{
		QuestionType: model.QuestionTypeSelect,
		SelectOptions: []SelectOptionRequest{
			{Value: "a", Valid: true},
			{Value: "b", Valid: true},
		},
	})
	assert.Contains(t, fields, "selectOptions")

	// Multi-choice allows several valid options.
	assert.Empty(t, ValidateQuestionRequest(QuestionRequest{
		QuestionType: model.QuestionTypeSelect,
		Multiple:     true,
		SelectOptions: []SelectOptionRequest{
			{Value: "a", Valid: true},
			{Value: "b", Valid: true},
			{Value: "c"},
		},
	}))
}

func TestValidateSortQuestion(t *testing.T) {
	fields := ValidateQuestionRequest(QuestionRequest{
		QuestionType: model.QuestionTypeSort,
		CategoryA:    "Fruits",
		CategoryB:    "Vegetables",
		SortOptions: []SortOptionRequest{
			{Value: "apple", Category: "A"},
		},
	})
	assert.Contains(t, fields, "sortOptions")

	assert.Empty(t, ValidateQuestionRequest(QuestionRequest{
		QuestionType: model.QuestionTypeSort,
		CategoryA:    "Fruits",
		CategoryB:    "Vegetables",
		SortOptions: []SortOptionRequest{
			{Value: "apple", Category: "A"},
			{Value: "carrot", Category: "B"},
		},
	}))
}

func TestValidateNumberLineQuestion(t *testing.T) {
	start, end, step := 0.0, 10.0, 0.5
	expected := 3.5
	assert.Empty(t, ValidateQuestionRequest(QuestionRequest{
		QuestionType:  model.QuestionTypeNumberLine,
		Start:         &start,
		End:           &end,
		Step:          &step,
		ExpectedValue: &expected,
	}))

	badStep := -1.0
	fields := ValidateQuestionRequest(QuestionRequest{
		QuestionType:  model.QuestionTypeNumberLine,
		Start:         &start,
		End:           &end,
		Step:          &badStep,
		ExpectedValue: &expected,
	})
	assert.Contains(t, fields, "step")

	outside := 12.0
	fields = ValidateQuestionRequest(QuestionRequest{
		QuestionType:  model.QuestionTypeNumberLine,
		Start:         &start,
		End:           &end,
		Step:          &step,
		ExpectedValue: &outside,
	})
	assert.Contains(t, fields, "expectedValue")
}

func TestValidateDragAndDropQuestion(t *testing.T) {
	zero, badIdx := 0, 5
	assert.Empty(t, ValidateQuestionRequest(QuestionRequest{
		QuestionType: model.QuestionTypeDragAndDrop,
		Draggables:   []DraggableOptionRequest{{Value: "cat"}},
		Areas:        []AreaOptionRequest{{Name: "zone", ExpectedDraggable: &zero}},
	}))

	fields := ValidateQuestionRequest(QuestionRequest{
		QuestionType: model.QuestionTypeDragAndDrop,
		Draggables:   []DraggableOptionRequest{{Value: "cat"}},
		Areas:        []AreaOptionRequest{{Name: "zone", ExpectedDraggable: &badIdx}},
	})
	assert.Contains(t, fields, "areas")

	fields = ValidateQuestionRequest(QuestionRequest{
		QuestionType: model.QuestionTypeDragAndDrop,
		Draggables:   []DraggableOptionRequest{{Value: "cat"}},
		Areas:        []AreaOptionRequest{{Name: "zone"}},
	})
	assert.Contains(t, fields, "areas")
}

func TestValidateDominoQuestion(t *testing.T) {
	fields := ValidateQuestionRequest(QuestionRequest{
		QuestionType: model.QuestionTypeDomino,
		DominoOptions: []DominoOptionRequest{
			{LeftValue: 1, RightValue: 2, Valid: true},
			{LeftValue: 3, RightValue: 4, Valid: true},
		},
	})
	assert.Contains(t, fields, "dominoOptions")

	assert.Empty(t, ValidateQuestionRequest(QuestionRequest{
		QuestionType: model.QuestionTypeDomino,
		DominoOptions: []DominoOptionRequest{
			{LeftValue: 1, RightValue: 2, Valid: true},
			{LeftValue: 3, RightValue: 4},
		},
	}))
}

func TestValidateCustomizedDragAndDrop(t *testing.T) {
	assert.Empty(t, ValidateQuestionRequest(QuestionRequest{
		QuestionType:    model.QuestionTypeCustomizedDragAndDrop,
		CombinationRule: model.CombinationProduct,
	}))

	fields := ValidateQuestionRequest(QuestionRequest{
		QuestionType:    model.QuestionTypeCustomizedDragAndDrop,
		CombinationRule: "division",
	})
	assert.Contains(t, fields, "combinationRule")
}

func TestIsPermutation(t *testing.T) {
	assert.True(t, IsPermutation([]uint{3, 1, 2}, []uint{1, 2, 3}))
	assert.True(t, IsPermutation(nil, nil))
	assert.False(t, IsPermutation([]uint{1, 2}, []uint{1, 2, 3}))
	assert.False(t, IsPermutation([]uint{1, 1, 2}, []uint{1, 2, 2}))
	assert.False(t, IsPermutation([]uint{1, 4}, []uint{1, 2}))
}

func TestForceSELFirst(t *testing.T) {
	sel := map[uint]bool{4: true, 2: true}
	isSEL := func(id uint) bool { return sel[id] }

	got := ForceSELFirst([]uint{1, 2, 3, 4}, isSEL)
	assert.Equal(t, []uint{2, 4, 1, 3}, got)

	// Already ordered lists are untouched.
	got = ForceSELFirst([]uint{2, 4, 1, 3}, isSEL)
	assert.Equal(t, []uint{2, 4, 1, 3}, got)

	got = ForceSELFirst([]uint{5, 6}, func(uint) bool { return false })
	assert.Equal(t, []uint{5, 6}, got)
}
