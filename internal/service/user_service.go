package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"

	"edu_assessment_backend/internal/model"
	"edu_assessment_backend/internal/repository"
	"edu_assessment_backend/internal/util"

	"gorm.io/gorm"
)

const usernameAttempts = 100

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

type StudentRequest struct {
	FirstName    string  `json:"firstName" binding:"required"`
	LastName     string  `json:"lastName" binding:"required"`
	LanguageCode string  `json:"languageCode" binding:"required,max=3"`
	CountryCode  string  `json:"countryCode" binding:"required,max=3"`
	GroupName    *string `json:"groupName"`
}

type ProfileUpdateRequest struct {
	FirstName    *string `json:"firstName"`
	LastName     *string `json:"lastName"`
	LanguageCode *string `json:"languageCode"`
	CountryCode  *string `json:"countryCode"`
	GroupName    *string `json:"groupName"`
}

// GenerateStudentUsername draws random 6-digit codes and rejects collisions
// until a free one is found.
func GenerateStudentUsername(exists func(string) (bool, error)) (string, error) {
	for i := 0; i < usernameAttempts; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(1000000))
		if err != nil {
			return "", err
		}
		candidate := fmt.Sprintf("%06d", n.Int64())
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", errors.New("username space exhausted")
}

// CreateStudent creates a student owned by the supervisor. The account gets
// a generated 6-digit username and no password.
func (s *UserService) CreateStudent(viewer *util.Claims, req StudentRequest) (*model.User, error) {
	if viewer.Role != model.Supervisor {
		return nil, util.NewPermissionError("only supervisors create students")
	}

	username, err := GenerateStudentUsername(s.UserRepo.UsernameExists)
	if err != nil {
		return nil, util.NewStoreError(err)
	}

	supervisorID := viewer.UserID
	student := &model.User{
		Username:     username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Role:         model.Student,
		LanguageCode: req.LanguageCode,
		CountryCode:  req.CountryCode,
		GroupName:    req.GroupName,
		CreatedByID:  &supervisorID,
	}
	if err := s.UserRepo.Create(student); err != nil {
		return nil, util.NewStoreError(err)
	}
	return student, nil
}

// ListStudents returns the supervisor's own students; other roles see an
// empty list.
func (s *UserService) ListStudents(viewer *util.Claims) ([]model.User, error) {
	if viewer.Role != model.Supervisor {
		return []model.User{}, nil
	}
	students, err := s.UserRepo.ListStudentsBySupervisor(viewer.UserID)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	return students, nil
}

func (s *UserService) GetStudent(viewer *util.Claims, studentID uint) (*model.User, error) {
	student, err := s.findOwnedStudent(viewer, studentID)
	if err != nil {
		return nil, err
	}
	return student, nil
}

// UpdateStudent applies a supervisor edit to an owned student.
func (s *UserService) UpdateStudent(viewer *util.Claims, studentID uint, req ProfileUpdateRequest) (*model.User, error) {
	student, err := s.findOwnedStudent(viewer, studentID)
	if err != nil {
		return nil, err
	}
	applyProfileUpdate(student, req)
	if err := s.UserRepo.Update(student); err != nil {
		return nil, util.NewStoreError(err)
	}
	return student, nil
}

func (s *UserService) DeleteStudent(viewer *util.Claims, studentID uint) error {
	if _, err := s.findOwnedStudent(viewer, studentID); err != nil {
		return err
	}
	if err := s.UserRepo.Delete(studentID); err != nil {
		return util.NewStoreError(err)
	}
	return nil
}

// UpdateOwnProfile lets a student edit their own fields. Username and
// password are never editable here.
func (s *UserService) UpdateOwnProfile(viewer *util.Claims, req ProfileUpdateRequest) (*model.User, error) {
	user, err := s.UserRepo.FindByID(viewer.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError("user not found")
		}
		return nil, util.NewStoreError(err)
	}
	applyProfileUpdate(user, req)
	if err := s.UserRepo.Update(user); err != nil {
		return nil, util.NewStoreError(err)
	}
	return user, nil
}

func (s *UserService) findOwnedStudent(viewer *util.Claims, studentID uint) (*model.User, error) {
	if viewer.Role != model.Supervisor {
		return nil, util.NewPermissionError("supervisor role required")
	}
	student, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError("student not found")
		}
		return nil, util.NewStoreError(err)
	}
	// Invisible and absent are indistinguishable on read.
	if !student.IsStudent() || student.CreatedByID == nil || *student.CreatedByID != viewer.UserID {
		return nil, util.NewNotFoundError("student not found")
	}
	return student, nil
}

func applyProfileUpdate(u *model.User, req ProfileUpdateRequest) {
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.LanguageCode != nil {
		u.LanguageCode = *req.LanguageCode
	}
	if req.CountryCode != nil {
		u.CountryCode = *req.CountryCode
	}
	if req.GroupName != nil {
		u.GroupName = req.GroupName
	}
}
