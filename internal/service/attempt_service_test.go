package service

import (
	"errors"
	"testing"

	"edu_assessment_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Two serialised opens on one access: the first inserts, the second must see
// the row the first created and return it instead of inserting again.
func TestOpenAttemptSecondCallerReusesOpenRow(t *testing.T) {
	var stored *model.QuestionSetAnswer
	creates := 0

	open := func() (*model.QuestionSetAnswer, error) {
		return openAttempt(
			func() error { return nil },
			func() (*model.QuestionSetAnswer, error) {
				if stored == nil {
					return nil, gorm.ErrRecordNotFound
				}
				return stored, nil
			},
			func(a *model.QuestionSetAnswer) error {
				creates++
				a.ID = 77
				stored = a
				return nil
			},
			4, 9,
		)
	}

	first, err := open()
	require.NoError(t, err)
	second, err := open()
	require.NoError(t, err)

	assert.Equal(t, 1, creates)
	assert.Equal(t, first.ID, second.ID)
	assert.False(t, second.Complete)
	assert.Equal(t, uint(9), second.AccessID)
	assert.Equal(t, uint(4), second.SessionID)
}

func TestOpenAttemptLocksBeforeLookup(t *testing.T) {
	var calls []string

	_, err := openAttempt(
		func() error { calls = append(calls, "lock"); return nil },
		func() (*model.QuestionSetAnswer, error) {
			calls = append(calls, "find")
			return nil, gorm.ErrRecordNotFound
		},
		func(a *model.QuestionSetAnswer) error { calls = append(calls, "create"); return nil },
		1, 1,
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"lock", "find", "create"}, calls)
}

func TestOpenAttemptLockFailureAborts(t *testing.T) {
	boom := errors.New("lock wait timeout")
	touched := false

	_, err := openAttempt(
		func() error { return boom },
		func() (*model.QuestionSetAnswer, error) { touched = true; return nil, gorm.ErrRecordNotFound },
		func(a *model.QuestionSetAnswer) error { touched = true; return nil },
		1, 1,
	)
	assert.ErrorIs(t, err, boom)
	assert.False(t, touched)
}

func TestOpenAttemptLookupErrorPropagates(t *testing.T) {
	boom := errors.New("connection lost")

	_, err := openAttempt(
		func() error { return nil },
		func() (*model.QuestionSetAnswer, error) { return nil, boom },
		func(a *model.QuestionSetAnswer) error { t.Fatal("create must not run"); return nil },
		1, 1,
	)
	assert.ErrorIs(t, err, boom)
}
