package service

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"taskly-be/internal/mailer"
	"taskly-be/internal/repository"
)

// Reset tokens stay valid for one hour after they are issued.
const resetTokenTTL = time.Hour

// PasswordResetService defines the interface for the reset-token lifecycle
type PasswordResetService interface {
	ForgotPassword(email string) error
	ResetPassword(token, newPassword string) error
}

type passwordResetService struct {
	userRepo   repository.UserRepository
	mailer     mailer.Mailer
	baseURL    string
	bcryptCost int
	now        func() time.Time
}

// NewPasswordResetService creates a new password reset service. baseURL is
// the public address embedded in reset links.
func NewPasswordResetService(userRepo repository.UserRepository, m mailer.Mailer, baseURL string) PasswordResetService {
	return &passwordResetService{
		userRepo:   userRepo,
		mailer:     m,
		baseURL:    baseURL,
		bcryptCost: bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// ForgotPassword issues a single-use reset token for the account and mails
// a link embedding it. The token replaces any previously issued one.
func (s *passwordResetService) ForgotPassword(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to find user: %w", err)
	}

	token, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	expiresAt := s.now().Add(resetTokenTTL)
	if err := s.userRepo.SetResetToken(user.ID, token, expiresAt); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/api/auth/reset-password?token=%s", s.baseURL, token)
	if err := s.mailer.SendPasswordReset(user.Email, resetURL, expiresAt); err != nil {
		return fmt.Errorf("failed to send reset email: %w", err)
	}
	return nil
}

// ResetPassword sets a new password for the user holding the token. The
// token is rejected once it has been used or its expiry instant has
// passed; it is accepted strictly before.
func (s *passwordResetService) ResetPassword(token, newPassword string) error {
	if token == "" {
		return ErrInvalidToken
	}
	if !hasDigit(newPassword) {
		return ErrPasswordNeedsDigit
	}

	user, err := s.userRepo.FindByResetToken(token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrInvalidToken
		}
		return fmt.Errorf("failed to find user by reset token: %w", err)
	}

	if user.ResetTokenExpiresAt == nil || !s.now().Before(*user.ResetTokenExpiresAt) {
		return ErrInvalidToken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	// UpdatePassword clears the token in the same statement, making it
	// strictly single-use.
	if err := s.userRepo.UpdatePassword(user.ID, string(hashed)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// generateResetToken returns 128 bits of hex-encoded randomness, enough
// that a token cannot be guessed. Uniqueness is enforced by the store.
func generateResetToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
