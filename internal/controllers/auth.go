package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"userhub/internal/apperrors"
	"userhub/internal/models"
	"userhub/internal/repositories"
	"userhub/internal/token"
	"userhub/internal/utils"
)

type AuthController struct {
	users  repositories.UserRepository
	tokens *token.Service
	hasher *utils.Hasher
	email  *utils.SMTPClient
}

func NewAuthController(users repositories.UserRepository, tokens *token.Service, hasher *utils.Hasher, email *utils.SMTPClient) *AuthController {
	return &AuthController{users: users, tokens: tokens, hasher: hasher, email: email}
}

type registerPayload struct {
	FullName string      `json:"full_name" binding:"required"`
	Email    string      `json:"email" binding:"required,email"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     models.Role `json:"role" binding:"omitempty,oneof=USER ADMIN"`
}

func (a *AuthController) Register(c *gin.Context) {
	var p registerPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		_ = c.Error(apperrors.Wrap(apperrors.KindValidation, "invalid request body", err))
		return
	}
	p.Email = strings.ToLower(p.Email)

	// Fast path only; the unique index is what actually enforces this.
	existing, err := a.users.FindByEmail(c.Request.Context(), p.Email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		_ = c.Error(apperrors.Wrap(apperrors.KindInternal, "failed to check email", err))
		return
	}
	if existing != nil && !existing.DeletedAt.Valid {
		_ = c.Error(apperrors.New(apperrors.KindDuplicateEmail, "An account with this email already exists"))
		return
	}

	hash, err := a.hasher.Hash(p.Password)
	if err != nil {
		_ = c.Error(apperrors.Wrap(apperrors.KindInternal, "could not hash password", err))
		return
	}

	role := p.Role
	if role == "" {
		role = models.RoleUser
	}
	user := models.User{
		FullName: p.FullName,
		Email:    p.Email,
		Password: hash,
		Role:     role,
		IsActive: true,
	}
	if err := a.users.Create(c.Request.Context(), &user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			_ = c.Error(apperrors.New(apperrors.KindDuplicateEmail, "An account with this email already exists"))
			return
		}
		_ = c.Error(apperrors.Wrap(apperrors.KindInternal, "failed to create account", err))
		return
	}

	tokenStr, err := a.tokens.Issue(user.ID)
	if err != nil {
		_ = c.Error(apperrors.Wrap(apperrors.KindInternal, "could not create token", err))
		return
	}

	// send welcome email (non-blocking)
	go func() {
		if a.email != nil {
			_ = a.email.Send(user.Email, "Welcome", fmt.Sprintf("Hello %s,\n\nWelcome! Your account is created.", user.FullName))
		}
	}()

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user.Sanitized(),
		"token":   tokenStr,
	})
}

type loginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (a *AuthController) Login(c *gin.Context) {
	var p loginPayload
	if err := c.ShouldBindJSON(&p); err != nil {
		_ = c.Error(apperrors.Wrap(apperrors.KindValidation, "invalid request body", err))
		return
	}
	email := strings.ToLower(p.Email)

	// Unknown email, soft-deleted account and wrong password all produce
	// the same response so callers cannot probe which emails exist.
	user, err := a.users.FindByEmail(c.Request.Context(), email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = c.Error(invalidCredentials())
			return
		}
		_ = c.Error(apperrors.Wrap(apperrors.KindInternal, "failed to look up account", err))
		return
	}
	if user.DeletedAt.Valid {
		_ = c.Error(invalidCredentials())
		return
	}
	if !user.IsActive {
		_ = c.Error(apperrors.New(apperrors.KindAccountDeactivated, "Your account has been deactivated. Please contact an administrator."))
		return
	}
	if err := a.hasher.Compare(user.Password, p.Password); err != nil {
		_ = c.Error(invalidCredentials())
		return
	}

	tokenStr, err := a.tokens.Issue(user.ID)
	if err != nil {
		_ = c.Error(apperrors.Wrap(apperrors.KindInternal, "could not create token", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user.Sanitized(),
		"token":   tokenStr,
	})
}

// Logout is stateless: tokens stay valid until they expire and the client
// simply discards its copy. A denylist would go here if revocation were
// ever required.
func (a *AuthController) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func invalidCredentials() *apperrors.Error {
	return apperrors.New(apperrors.KindInvalidCredentials, "Email or password is incorrect")
}
