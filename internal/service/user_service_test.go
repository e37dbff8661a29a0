package service

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateStudentUsername(t *testing.T) {
	username, err := GenerateStudentUsername(func(string) (bool, error) { return false, nil })
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{6}$`), username)
}

func TestGenerateStudentUsernameSkipsCollisions(t *testing.T) {
	taken := map[string]bool{}
	calls := 0
	username, err := GenerateStudentUsername(func(candidate string) (bool, error) {
		calls++
		// The first two draws collide.
		if calls <= 2 {
			taken[candidate] = true
			return true, nil
		}
		return taken[candidate], nil
	})
	require.NoError(t, err)
	assert.NotEmpty(t, username)
	assert.False(t, taken[username])
	assert.GreaterOrEqual(t, calls, 3)
}

func TestGenerateStudentUsernameGivesUp(t *testing.T) {
	_, err := GenerateStudentUsername(func(string) (bool, error) { return true, nil })
	assert.Error(t, err)
}

func TestGenerateStudentUsernamePropagatesStoreError(t *testing.T) {
	boom := errors.New("connection lost")
	_, err := GenerateStudentUsername(func(string) (bool, error) { return false, boom })
	assert.ErrorIs(t, err, boom)
}
