package model

type Subject string

const (
	SubjectMath     Subject = "math"
	SubjectLiteracy Subject = "literacy"
	SubjectTutorial Subject = "tutorial"
)

// swagger:model Assessment
type Assessment struct {
	BaseModel
	Title        string  `gorm:"size:200;not null" json:"title"`
	Grade        int     `json:"grade"`
	Subject      Subject `gorm:"size:50" json:"subject"`
	LanguageCode string  `gorm:"size:3" json:"languageCode"`
	CountryCode  string  `gorm:"size:3" json:"countryCode"`
	Private      bool    `gorm:"default:false" json:"private"`
	Archived     bool    `gorm:"default:false" json:"archived"`
	// SELQuestion activates the placement rule: SEL questions must sit in
	// the first question set.
	SELQuestion bool `gorm:"default:false" json:"selQuestion"`
	CreatedByID uint `gorm:"index;type:bigint unsigned" json:"createdById"`

	QuestionSets []QuestionSet `gorm:"foreignKey:AssessmentID" json:"questionSets,omitempty"`
}

func (Assessment) TableName() string {
	return "assessments"
}
