package repository

import (
	"edu_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type LookupRepository struct {
	DB *gorm.DB
}

func NewLookupRepository(db *gorm.DB) *LookupRepository {
	return &LookupRepository{DB: db}
}

func (r *LookupRepository) ListLanguages() ([]model.Language, error) {
	var langs []model.Language
	err := r.DB.Order("code ASC").Find(&langs).Error
	return langs, err
}

func (r *LookupRepository) ListCountries() ([]model.Country, error) {
	var countries []model.Country
	err := r.DB.Order("code ASC").Find(&countries).Error
	return countries, err
}
