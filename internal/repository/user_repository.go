package repository

import (
	"edu_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

func (r *UserRepository) Delete(id uint) error {
	return r.DB.Delete(&model.User{}, id).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var u model.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var u model.User
	if err := r.DB.Where("email = ? AND role = ?", email, model.Supervisor).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var u model.User
	if err := r.DB.Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) UsernameExists(username string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.User{}).Where("username = ?", username).Count(&count).Error
	return count > 0, err
}

func (r *UserRepository) ListStudentsBySupervisor(supervisorID uint) ([]model.User, error) {
	var students []model.User
	err := r.DB.Where("role = ? AND created_by_id = ?", model.Student, supervisorID).
		Order("id ASC").Find(&students).Error
	return students, err
}

func (r *UserRepository) FindStudentsByIDs(ids []uint) ([]model.User, error) {
	var students []model.User
	if len(ids) == 0 {
		return students, nil
	}
	err := r.DB.Where("role = ? AND id IN ?", model.Student, ids).Find(&students).Error
	return students, err
}
