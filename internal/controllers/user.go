package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"userhub/internal/apperrors"
	"userhub/internal/middleware"
	"userhub/internal/repositories"
	"userhub/internal/utils"
)

type UserController struct {
	users  repositories.UserRepository
	hasher *utils.Hasher
}

func NewUserController(users repositories.UserRepository, hasher *utils.Hasher) *UserController {
	return &UserController{users: users, hasher: hasher}
}

func (u *UserController) Profile(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(apperrors.New(apperrors.KindUnauthenticated, "authentication required"))
		return
	}
	user, err := u.users.FindByID(c.Request.Context(), current.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = c.Error(apperrors.New(apperrors.KindNotFound, "User not found"))
			return
		}
		_ = c.Error(apperrors.Wrap(apperrors.KindInternal, "failed to load profile", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.Sanitized()})
}

type updateProfilePayload struct {
	FullName string `json:"full_name"`
	Password string `json:"password" binding:"omitempty,min=8"`
}

// UpdateProfile accepts a partial update of full name and password.
// Email is immutable after registration and is not accepted here.
func (u *UserController) UpdateProfile(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(apperrors.New(apperrors.KindUnauthenticated, "authentication required"))
		return
	}

	var p updateProfilePayload
	if err := c.ShouldBindJSON(&p); err != nil {
		_ = c.Error(apperrors.Wrap(apperrors.KindValidation, "invalid request body", err))
		return
	}

	fields := map[string]interface{}{}
	if p.FullName != "" {
		fields["full_name"] = p.FullName
	}
	if p.Password != "" {
		hash, err := u.hasher.Hash(p.Password)
		if err != nil {
			_ = c.Error(apperrors.Wrap(apperrors.KindInternal, "could not hash password", err))
			return
		}
		fields["password"] = hash
	}
	if len(fields) == 0 {
		_ = c.Error(apperrors.New(apperrors.KindValidation, "No valid fields to update"))
		return
	}

	user, err := u.users.Update(c.Request.Context(), current.ID, fields)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = c.Error(apperrors.New(apperrors.KindNotFound, "User not found"))
			return
		}
		_ = c.Error(apperrors.Wrap(apperrors.KindInternal, "failed to update profile", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    user.Sanitized(),
	})
}
