package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAttachmentParentCount(t *testing.T) {
	q, s := uint(1), uint(2)

	assert.Equal(t, 0, (&Attachment{}).ParentCount())
	assert.Equal(t, 1, (&Attachment{QuestionID: &q}).ParentCount())
	assert.Equal(t, 1, (&Attachment{QuestionID: &q, ForHint: true}).ParentCount())
	assert.Equal(t, 2, (&Attachment{QuestionID: &q, QuestionSetID: &s}).ParentCount())
}
