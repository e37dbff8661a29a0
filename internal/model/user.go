package model

type UserRole string

const (
	Supervisor UserRole = "supervisor"
	Student    UserRole = "student"
)

// swagger:model User
type User struct {
	BaseModel
	Username  string   `gorm:"size:100;uniqueIndex;not null" json:"username"`
	FirstName string   `gorm:"size:100" json:"firstName"`
	LastName  string   `gorm:"size:100" json:"lastName"`
	Email     string   `gorm:"size:100;index" json:"email,omitempty"`
	Password  string   `gorm:"size:100" json:"-"`
	Role      UserRole `gorm:"type:enum('supervisor','student');default:'student'" json:"role"`

	// Student-only fields. Supervisors authenticate with email + password,
	// students with a generated 6-digit username and no password.
	LanguageCode string  `gorm:"size:3" json:"languageCode,omitempty"`
	CountryCode  string  `gorm:"size:3" json:"countryCode,omitempty"`
	GroupName    *string `gorm:"size:100" json:"groupName,omitempty"`

	CreatedByID *uint `gorm:"index;type:bigint unsigned" json:"createdById,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsSupervisor() bool {
	return u.Role == Supervisor
}

func (u *User) IsStudent() bool {
	return u.Role == Student
}
