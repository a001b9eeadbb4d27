package service

import (
	"database/sql"
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"

	"taskly-be/internal/entities"
	"taskly-be/internal/repository"
)

// AuthService defines the interface for credential verification and
// account creation
type AuthService interface {
	Register(email, password string) (*entities.User, error)
	Login(email, password string) (*entities.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	bcryptCost int
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository) AuthService {
	return &authService{
		userRepo:   userRepo,
		bcryptCost: bcrypt.DefaultCost,
	}
}

// Register creates a new user account with a hashed password. The email
// format and minimum password length are checked at the binding layer; the
// digit rule and email uniqueness are enforced here.
func (s *authService) Register(email, password string) (*entities.User, error) {
	if !hasDigit(password) {
		return nil, ErrPasswordNeedsDigit
	}

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(email, string(hashed))
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login verifies the credentials and returns the matching user. The same
// error is returned for an unknown email and a wrong password.
func (s *authService) Login(email, password string) (*entities.User, error) {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func hasDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
