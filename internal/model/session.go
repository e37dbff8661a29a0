package model

import "time"

// AnswerSession groups the attempts of one student sitting.
//
// swagger:model AnswerSession
type AnswerSession struct {
	BaseModel
	StudentID uint       `gorm:"index;type:bigint unsigned" json:"studentId"`
	StartDate time.Time  `json:"startDate"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

func (AnswerSession) TableName() string {
	return "answer_sessions"
}
