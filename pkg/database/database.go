package database

import (
	"fmt"
	"log"

	"edu_assessment_backend/internal/config"
	"edu_assessment_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})
	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Language{},
		&model.Country{},
		&model.Assessment{},
		&model.QuestionSet{},
		&model.Question{},
		&model.SelectOption{},
		&model.SortOption{},
		&model.AreaOption{},
		&model.DraggableOption{},
		&model.DominoOption{},
		&model.Attachment{},
		&model.QuestionSetAccess{},
		&model.AnswerSession{},
		&model.QuestionSetAnswer{},
		&model.Answer{},
	)
	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedLookups(db)

	return db, nil
}

// seedLookups fills the language and country tables on an empty database.
func seedLookups(db *gorm.DB) {
	var langCount int64
	db.Model(&model.Language{}).Count(&langCount)
	if langCount == 0 {
		defaults := []model.Language{
			{Code: "en", Name: "English"},
			{Code: "fr", Name: "Français"},
			{Code: "de", Name: "Deutsch"},
			{Code: "es", Name: "Español"},
			{Code: "it", Name: "Italiano"},
		}
		for _, l := range defaults {
			db.Create(&l)
		}
	}

	var countryCount int64
	db.Model(&model.Country{}).Count(&countryCount)
	if countryCount == 0 {
		defaults := []model.Country{
			{Code: "us", Name: "United States"},
			{Code: "gb", Name: "United Kingdom"},
			{Code: "fr", Name: "France"},
			{Code: "de", Name: "Germany"},
			{Code: "es", Name: "Spain"},
			{Code: "it", Name: "Italy"},
		}
		for _, c := range defaults {
			db.Create(&c)
		}
	}
}
