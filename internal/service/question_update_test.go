package service

import (
	"testing"

	"edu_assessment_backend/internal/model"

	"github.com/stretchr/testify/assert"
)

// An update that turns a question into an SEL one moves it to the front;
// staying SEL, staying regular, or demoting from SEL does not reorder.
func TestSELPromotionOnUpdate(t *testing.T) {
	assert.True(t, selPromoted(model.QuestionTypeInput, model.QuestionTypeSEL))
	assert.True(t, selPromoted(model.QuestionTypeSelect, model.QuestionTypeSEL))
	assert.False(t, selPromoted(model.QuestionTypeSEL, model.QuestionTypeSEL))
	assert.False(t, selPromoted(model.QuestionTypeInput, model.QuestionTypeInput))
	assert.False(t, selPromoted(model.QuestionTypeSEL, model.QuestionTypeInput))
}
