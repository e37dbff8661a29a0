package service

import (
	"edu_assessment_backend/internal/config"
	"edu_assessment_backend/internal/model"
	"edu_assessment_backend/internal/repository"
	"edu_assessment_backend/internal/util"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	UserRepo *repository.UserRepository
	Cfg      *config.Config
}

func NewAuthService(userRepo *repository.UserRepository, cfg *config.Config) *AuthService {
	return &AuthService{
		UserRepo: userRepo,
		Cfg:      cfg,
	}
}

// TokenResponse is the auth token payload; email is present for
// supervisors only.
type TokenResponse struct {
	Token         string `json:"token"`
	UserID        uint   `json:"user_id"`
	UserFirstName string `json:"user_first_name"`
	UserLastName  string `json:"user_last_name"`
	UserEmail     string `json:"user_email,omitempty"`
}

// RegisterSupervisor creates a supervisor account. Student accounts are
// created by supervisors through the user service, never self-registered.
func (s *AuthService) RegisterSupervisor(email, password, firstName, lastName string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, util.NewValidationError("email and password are required", map[string]string{
			"email": "required", "password": "required",
		})
	}

	_, err := s.UserRepo.FindByEmail(email)
	if err == nil {
		return nil, util.NewConflictError("email already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewStoreError(err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, util.NewStoreError(err)
	}

	user := &model.User{
		Username:  email,
		FirstName: firstName,
		LastName:  lastName,
		Email:     email,
		Password:  string(hashedPassword),
		Role:      model.Supervisor,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, util.NewStoreError(err)
	}
	return user, nil
}

// Token authenticates either role: supervisors by email + password, students
// by their 6-digit code (password auth is disabled on student accounts).
func (s *AuthService) Token(username, password string) (*TokenResponse, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewPermissionError("invalid credentials")
		}
		return nil, util.NewStoreError(err)
	}

	if user.IsSupervisor() {
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
			return nil, util.NewPermissionError("invalid credentials")
		}
	}

	token, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, util.NewStoreError(err)
	}

	resp := &TokenResponse{
		Token:         token,
		UserID:        user.ID,
		UserFirstName: user.FirstName,
		UserLastName:  user.LastName,
	}
	if user.IsSupervisor() {
		resp.UserEmail = user.Email
	}
	return resp, nil
}
