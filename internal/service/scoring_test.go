package service

import (
	"testing"
	"time"

	"edu_assessment_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func attempt(id uint, accessID uint, start time.Time, complete bool) model.QuestionSetAnswer {
	a := model.QuestionSetAnswer{AccessID: accessID, StartDate: start, Complete: complete}
	a.ID = id
	return a
}

func TestPercentage(t *testing.T) {
	assert.Nil(t, Percentage(0, 0))

	p := Percentage(1, 3)
	require.NotNil(t, p)
	assert.Equal(t, 33.33, *p)

	p = Percentage(0, 4)
	require.NotNil(t, p)
	assert.Equal(t, 0.0, *p)

	p = Percentage(2, 3)
	require.NotNil(t, p)
	assert.Equal(t, 66.67, *p)
}

func TestRounding(t *testing.T) {
	// Half away from zero.
	assert.Equal(t, 66.7, Round1(66.65))
	assert.Equal(t, 0.1, Round1(0.05))
	assert.Equal(t, 12.35, Round2(12.345))
}

func TestSelectAttempt(t *testing.T) {
	base := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	attempts := []model.QuestionSetAnswer{
		attempt(5, 1, base.Add(2*time.Hour), true),
		attempt(3, 1, base, true),
		attempt(9, 1, base.Add(4*time.Hour), false), // open, never selected
		attempt(7, 1, base.Add(time.Hour), true),
	}

	first := SelectAttempt(attempts, model.FirstAttempt)
	require.NotNil(t, first)
	assert.Equal(t, uint(3), first.ID)

	last := SelectAttempt(attempts, model.LastAttempt)
	require.NotNil(t, last)
	assert.Equal(t, uint(5), last.ID)

	assert.Nil(t, SelectAttempt(nil, model.FirstAttempt))
	assert.Nil(t, SelectAttempt([]model.QuestionSetAnswer{attempt(1, 1, base, false)}, model.FirstAttempt))
}

func TestSelectAttemptTieBreaksOnID(t *testing.T) {
	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	attempts := []model.QuestionSetAnswer{
		attempt(8, 1, start, true),
		attempt(2, 1, start, true),
	}

	first := SelectAttempt(attempts, model.FirstAttempt)
	require.NotNil(t, first)
	assert.Equal(t, uint(2), first.ID)

	last := SelectAttempt(attempts, model.LastAttempt)
	require.NotNil(t, last)
	assert.Equal(t, uint(8), last.ID)
}

func TestSetScoreForAttempt(t *testing.T) {
	// No scorable questions: null, not zero.
	assert.Nil(t, SetScoreForAttempt(0, 0))

	score := SetScoreForAttempt(0, 4)
	require.NotNil(t, score)
	assert.Equal(t, 0.0, *score)

	score = SetScoreForAttempt(2, 3)
	require.NotNil(t, score)
	assert.Equal(t, 66.7, *score)

	// Clamped when answers outnumber surviving questions.
	score = SetScoreForAttempt(5, 3)
	require.NotNil(t, score)
	assert.Equal(t, 100.0, *score)
}

func TestGroupAttemptsByAccess(t *testing.T) {
	base := time.Now()
	grouped := GroupAttemptsByAccess([]model.QuestionSetAnswer{
		attempt(1, 10, base, true),
		attempt(2, 20, base, true),
		attempt(3, 10, base, false),
	})

	assert.Len(t, grouped, 2)
	assert.Len(t, grouped[10], 2)
	assert.Len(t, grouped[20], 1)
}

func TestCountValidAnswers(t *testing.T) {
	q1, q2 := uint(1), uint(2)
	answers := []model.Answer{
		{QuestionID: &q1, AnswerType: model.QuestionTypeInput, Valid: true},
		{QuestionID: &q1, AnswerType: model.QuestionTypeInput, Valid: false},
		{QuestionID: &q2, AnswerType: model.QuestionTypeSelect, Valid: true},
		// SEL and orphaned answers never count.
		{QuestionID: &q1, AnswerType: model.QuestionTypeSEL, Valid: true},
		{QuestionID: nil, AnswerType: model.QuestionTypeInput, Valid: true},
	}

	counts := CountValidAnswers(answers)
	assert.Equal(t, [2]int{1, 2}, counts[q1])
	assert.Equal(t, [2]int{1, 1}, counts[q2])
	assert.Len(t, counts, 2)
}

func TestMeanOfNonNil(t *testing.T) {
	a, b := 50.0, 100.0
	mean := MeanOfNonNil([]*float64{&a, nil, &b})
	require.NotNil(t, mean)
	assert.Equal(t, 75.0, *mean)

	assert.Nil(t, MeanOfNonNil(nil))
	assert.Nil(t, MeanOfNonNil([]*float64{nil, nil}))
}

func TestIndexOfAttempt(t *testing.T) {
	base := time.Now()
	ordered := []model.QuestionSetAnswer{
		attempt(3, 1, base, true),
		attempt(7, 1, base.Add(time.Hour), true),
		attempt(9, 1, base.Add(2*time.Hour), false),
	}

	assert.Equal(t, 1, IndexOfAttempt(ordered, 3))
	assert.Equal(t, 3, IndexOfAttempt(ordered, 9))
	assert.Equal(t, 0, IndexOfAttempt(ordered, 42))
}
