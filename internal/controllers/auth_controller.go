package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"taskly-be/internal/models"
	"taskly-be/internal/service"
	"taskly-be/internal/session"
)

type AuthController struct {
	authService  service.AuthService
	resetService service.PasswordResetService
	sessions     session.Store
	sessionTTL   time.Duration
}

func NewAuthController(authService service.AuthService, resetService service.PasswordResetService, sessions session.Store, sessionTTL time.Duration) *AuthController {
	return &AuthController{
		authService:  authService,
		resetService: resetService,
		sessions:     sessions,
		sessionTTL:   sessionTTL,
	}
}

// Register handles POST /api/auth/register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors": bindingErrors(err),
		})
		return
	}

	user, err := ac.authService.Register(req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordNeedsDigit):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"errors": gin.H{"password": "must contain at least one digit"},
			})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"errors": gin.H{"email": "is already in use"},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": err.Error(),
			})
		}
		return
	}

	// Registering logs the user straight in.
	if err := ac.establishSession(c, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, models.RegisterResponse{
		Message: "User registered",
		User: models.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	})
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"errors": bindingErrors(err),
		})
		return
	}

	user, err := ac.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid credentials",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	if err := ac.establishSession(c, user.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
	})
}

// Logout handles POST /api/auth/logout. Destroying a session that does not
// exist is not an error.
func (ac *AuthController) Logout(c *gin.Context) {
	if sessionID, err := c.Cookie(session.CookieName); err == nil && sessionID != "" {
		if err := ac.sessions.Destroy(c.Request.Context(), sessionID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": err.Error(),
			})
			return
		}
	}
	c.SetCookie(session.CookieName, "", -1, "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{
		"message": "Logout successful",
	})
}

// ForgotPassword handles POST /api/auth/forgot-password
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": bindingErrors(err),
		})
		return
	}

	if err := ac.resetService.ForgotPassword(req.Email); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// Kept a 400 rather than 404 so the route shape does not
			// advertise which emails have accounts.
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "User not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset instructions sent",
	})
}

// ResetPassword handles POST /api/auth/reset-password
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"errors": bindingErrors(err),
		})
		return
	}

	if err := ac.resetService.ResetPassword(req.Token, req.Password); err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken):
			c.JSON(http.StatusBadRequest, gin.H{
				"message": "Invalid or expired token",
			})
		case errors.Is(err, service.ErrPasswordNeedsDigit):
			c.JSON(http.StatusBadRequest, gin.H{
				"errors": gin.H{"password": "must contain at least one digit"},
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": err.Error(),
			})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password changed",
	})
}

func (ac *AuthController) establishSession(c *gin.Context, userID int64) error {
	sessionID, err := ac.sessions.Create(c.Request.Context(), userID)
	if err != nil {
		return err
	}
	c.SetCookie(session.CookieName, sessionID, int(ac.sessionTTL.Seconds()), "/", "", false, true)
	return nil
}
