package model

type AttachmentType string

const (
	AttachmentImage AttachmentType = "image"
	AttachmentAudio AttachmentType = "audio"
)

// Attachment is attached to exactly one parent: a question, a select option,
// a draggable option, a question set, or a question's hint. ForHint marks the
// hint variant of the question parent.
//
// swagger:model Attachment
type Attachment struct {
	BaseModel
	Type AttachmentType `gorm:"size:20;not null" json:"type"`
	// Either an external link or an object key in the storage backend.
	Link      string `gorm:"size:1000" json:"link,omitempty"`
	ObjectKey string `gorm:"size:500" json:"objectKey,omitempty"`

	QuestionID        *uint `gorm:"index;type:bigint unsigned" json:"questionId,omitempty"`
	SelectOptionID    *uint `gorm:"index;type:bigint unsigned" json:"selectOptionId,omitempty"`
	DraggableOptionID *uint `gorm:"index;type:bigint unsigned" json:"draggableOptionId,omitempty"`
	QuestionSetID     *uint `gorm:"index;type:bigint unsigned" json:"questionSetId,omitempty"`
	ForHint           bool  `gorm:"default:false" json:"forHint"`
}

func (Attachment) TableName() string {
	return "attachments"
}

// ParentCount counts the parent references set on the attachment; a valid
// attachment has exactly one.
func (a *Attachment) ParentCount() int {
	n := 0
	for _, id := range []*uint{a.QuestionID, a.SelectOptionID, a.DraggableOptionID, a.QuestionSetID} {
		if id != nil {
			n++
		}
	}
	return n
}
