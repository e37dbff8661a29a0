package model

// QuestionSet groups questions inside an assessment. Order values per
// assessment are a dense 1..N permutation; only evaluated sets contribute
// to scoring.
//
// swagger:model QuestionSet
type QuestionSet struct {
	BaseModel
	AssessmentID uint   `gorm:"index;type:bigint unsigned" json:"assessmentId"`
	Name         string `gorm:"size:200;not null" json:"name"`
	Order        int    `gorm:"column:order_num;default:0" json:"order"`
	Evaluated    bool   `gorm:"default:true" json:"evaluated"`

	Questions []Question `gorm:"foreignKey:QuestionSetID" json:"questions,omitempty"`
}

func (QuestionSet) TableName() string {
	return "question_sets"
}
