package model

import "time"

// QuestionSetAnswer is one attempt of a student on an accessed question set.
// complete=true is a one-way transition; answers become immutable afterwards.
// Attempt index is the 1-based rank among attempts on the same access ordered
// by start date (ties broken by id).
//
// swagger:model QuestionSetAnswer
type QuestionSetAnswer struct {
	BaseModel
	SessionID uint       `gorm:"index;type:bigint unsigned" json:"sessionId"`
	AccessID  uint       `gorm:"index;type:bigint unsigned" json:"accessId"`
	Complete  bool       `gorm:"default:false" json:"complete"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	Access *QuestionSetAccess `gorm:"foreignKey:AccessID" json:"access,omitempty"`
}

func (QuestionSetAnswer) TableName() string {
	return "question_set_answers"
}
