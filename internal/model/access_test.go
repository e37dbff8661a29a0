package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAccessValidOnInclusiveBounds(t *testing.T) {
	access := QuestionSetAccess{
		StartDate: day(2026, 3, 10),
		EndDate:   day(2026, 3, 20),
	}

	assert.True(t, access.ValidOn(day(2026, 3, 10)), "first day counts")
	assert.True(t, access.ValidOn(day(2026, 3, 20)), "last day counts")
	assert.True(t, access.ValidOn(day(2026, 3, 15)))
	assert.False(t, access.ValidOn(day(2026, 3, 9)))
	assert.False(t, access.ValidOn(day(2026, 3, 21)))
}

func TestAccessValidOnIgnoresTimeOfDay(t *testing.T) {
	access := QuestionSetAccess{
		StartDate: day(2026, 3, 10),
		EndDate:   day(2026, 3, 10),
	}

	lateEvening := time.Date(2026, 3, 10, 23, 59, 0, 0, time.UTC)
	assert.True(t, access.ValidOn(lateEvening))
}

func TestSingleDayWindow(t *testing.T) {
	access := QuestionSetAccess{
		StartDate: day(2026, 4, 1),
		EndDate:   day(2026, 4, 1),
	}

	assert.True(t, access.ValidOn(day(2026, 4, 1)))
	assert.False(t, access.ValidOn(day(2026, 4, 2)))
}
