package model

import "time"

// QuestionSetAccess is a time-bounded grant of one question set to one
// student. Unique per (student, question set); bulk grants upsert the dates.
// Validity is inclusive on both ends: start_date <= today <= end_date.
//
// swagger:model QuestionSetAccess
type QuestionSetAccess struct {
	BaseModel
	StudentID     uint      `gorm:"uniqueIndex:idx_student_question_set;type:bigint unsigned" json:"studentId"`
	QuestionSetID uint      `gorm:"uniqueIndex:idx_student_question_set;index;type:bigint unsigned" json:"questionSetId"`
	StartDate     time.Time `gorm:"type:date;not null" json:"startDate"`
	EndDate       time.Time `gorm:"type:date;not null" json:"endDate"`
}

func (QuestionSetAccess) TableName() string {
	return "question_set_accesses"
}

// ValidOn reports whether the access window covers the given day.
func (a *QuestionSetAccess) ValidOn(day time.Time) bool {
	d := truncateToDay(day)
	return !d.Before(truncateToDay(a.StartDate)) && !d.After(truncateToDay(a.EndDate))
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
