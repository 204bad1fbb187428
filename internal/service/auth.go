package service

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"academy-enrollment-api/internal/models"
	"academy-enrollment-api/internal/validation"
)

// Register creates an account and returns a signed session.
func (s *Service) Register(email, password, fullName string) (models.AuthResponse, error) {
	email = strings.ToLower(validation.SanitizeString(email))
	fullName = validation.SanitizeString(fullName)

	if err := validation.ValidateEmail(email); err != nil {
		return models.AuthResponse{}, err
	}
	if err := validation.ValidatePassword(password); err != nil {
		return models.AuthResponse{}, err
	}
	if fullName == "" {
		return models.AuthResponse{}, &validation.ValidationError{
			Field:   "full_name",
			Message: "is required",
		}
	}

	existing, err := s.db.GetUserByEmail(email)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if existing != nil {
		return models.AuthResponse{}, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.AuthResponse{}, err
	}

	user := models.User{
		ID:           uuid.New().String(),
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}

	if err := s.db.CreateUser(user); err != nil {
		return models.AuthResponse{}, err
	}

	token, err := s.signToken(user.ID, user.Email)
	if err != nil {
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{Token: token, UserID: user.ID}, nil
}

// Login verifies credentials and returns a signed session.
func (s *Service) Login(email, password string) (models.AuthResponse, error) {
	email = strings.ToLower(validation.SanitizeString(email))

	u, err := s.db.GetUserByEmail(email)
	if err != nil {
		return models.AuthResponse{}, err
	}
	if u == nil {
		return models.AuthResponse{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)); err != nil {
		return models.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := s.signToken(u.ID, u.Email)
	if err != nil {
		return models.AuthResponse{}, err
	}

	return models.AuthResponse{Token: token, UserID: u.ID}, nil
}
