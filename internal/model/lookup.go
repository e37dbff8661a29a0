package model

// Language and Country are reference tables; the core treats them as opaque
// codes and only joins them for display names.

// swagger:model Language
type Language struct {
	Code       string `gorm:"primaryKey;size:3" json:"code"`
	Name       string `gorm:"size:100;not null" json:"name"`
	NativeName string `gorm:"size:100" json:"nativeName"`
}

func (Language) TableName() string {
	return "languages"
}

// swagger:model Country
type Country struct {
	Code string `gorm:"primaryKey;size:3" json:"code"`
	Name string `gorm:"size:100;not null" json:"name"`
}

func (Country) TableName() string {
	return "countries"
}
