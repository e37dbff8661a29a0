package service

import (
	"math"

	"edu_assessment_backend/internal/model"
)

// Pure aggregation arithmetic. Everything here is deterministic over its
// inputs so the analytics service stays testable without a store.

// Round1 rounds half away from zero to 1 decimal (set scores).
func Round1(x float64) float64 {
	return math.Round(x*10) / 10
}

// Round2 rounds half away from zero to 2 decimals (question percentages).
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Percentage is 100*valid/answered rounded to 2 decimals, or nil when no
// answers exist. Division by zero never yields 0.
func Percentage(valid, answered int) *float64 {
	if answered == 0 {
		return nil
	}
	pct := Round2(100 * float64(valid) / float64(answered))
	return &pct
}

// SelectAttempt picks the first or last complete attempt by start date,
// ties broken by id ascending. Returns nil when no complete attempt exists.
func SelectAttempt(attempts []model.QuestionSetAnswer, selector model.AttemptSelector) *model.QuestionSetAnswer {
	var picked *model.QuestionSetAnswer
	for i := range attempts {
		a := &attempts[i]
		if !a.Complete {
			continue
		}
		if picked == nil {
			picked = a
			continue
		}
		switch selector {
		case model.LastAttempt:
			if a.StartDate.After(picked.StartDate) ||
				(a.StartDate.Equal(picked.StartDate) && a.ID > picked.ID) {
				picked = a
			}
		default: // first
			if a.StartDate.Before(picked.StartDate) ||
				(a.StartDate.Equal(picked.StartDate) && a.ID < picked.ID) {
				picked = a
			}
		}
	}
	return picked
}

// SetScoreForAttempt computes correct/total clamped to [0,1], as a
// percentage rounded to 1 decimal. This view returns 0 (not null) when
// answers exist but none are correct; nil only when the set has no
// scorable questions.
func SetScoreForAttempt(correct, totalNonSEL int) *float64 {
	if totalNonSEL == 0 {
		return nil
	}
	ratio := float64(correct) / float64(totalNonSEL)
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	score := Round1(100 * ratio)
	return &score
}

// GroupAttemptsByAccess buckets attempts without changing their order.
func GroupAttemptsByAccess(attempts []model.QuestionSetAnswer) map[uint][]model.QuestionSetAnswer {
	grouped := make(map[uint][]model.QuestionSetAnswer)
	for _, a := range attempts {
		grouped[a.AccessID] = append(grouped[a.AccessID], a)
	}
	return grouped
}

// CountValidAnswers tallies (correct, answered) per question over the given
// answers, skipping SEL answers and answers whose question was deleted.
func CountValidAnswers(answers []model.Answer) map[uint][2]int {
	counts := make(map[uint][2]int)
	for _, ans := range answers {
		if ans.QuestionID == nil || ans.AnswerType == model.QuestionTypeSEL {
			continue
		}
		c := counts[*ans.QuestionID]
		c[1]++
		if ans.Valid {
			c[0]++
		}
		counts[*ans.QuestionID] = c
	}
	return counts
}

// MeanOfNonNil averages the non-nil values; nil when none exist.
func MeanOfNonNil(values []*float64) *float64 {
	sum, n := 0.0, 0
	for _, v := range values {
		if v != nil {
			sum += *v
			n++
		}
	}
	if n == 0 {
		return nil
	}
	mean := Round1(sum / float64(n))
	return &mean
}
