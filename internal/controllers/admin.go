package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"userhub/internal/apperrors"
	"userhub/internal/middleware"
	"userhub/internal/models"
	"userhub/internal/repositories"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

type AdminController struct {
	users repositories.UserRepository
}

func NewAdminController(users repositories.UserRepository) *AdminController {
	return &AdminController{users: users}
}

func (a *AdminController) ListUsers(c *gin.Context) {
	page := parsePositiveInt(c.Query("page"), defaultPage)
	limit := parsePositiveInt(c.Query("limit"), defaultLimit)
	if limit > maxLimit {
		limit = maxLimit
	}
	search := strings.TrimSpace(c.Query("search"))

	users, total, err := a.users.List(c.Request.Context(), repositories.ListFilter{Search: search}, page, limit)
	if err != nil {
		_ = c.Error(apperrors.Wrap(apperrors.KindInternal, "failed to list users", err))
		return
	}

	sanitized := make([]*models.User, 0, len(users))
	for i := range users {
		sanitized = append(sanitized, users[i].Sanitized())
	}

	totalPages := (total + int64(limit) - 1) / int64(limit)
	c.JSON(http.StatusOK, gin.H{
		"users": sanitized,
		"pagination": gin.H{
			"page":        page,
			"limit":       limit,
			"total":       total,
			"total_pages": totalPages,
		},
	})
}

func (a *AdminController) GetUser(c *gin.Context) {
	user, err := a.users.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = c.Error(apperrors.New(apperrors.KindNotFound, "User not found"))
			return
		}
		_ = c.Error(apperrors.Wrap(apperrors.KindInternal, "failed to load user", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user.Sanitized()})
}

func (a *AdminController) ToggleStatus(c *gin.Context) {
	targetID := c.Param("id")
	caller, _ := middleware.CurrentUser(c)
	if caller != nil && caller.ID == targetID {
		_ = c.Error(apperrors.New(apperrors.KindSelfAction, "You cannot deactivate your own account"))
		return
	}

	user, err := a.users.FindByID(c.Request.Context(), targetID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = c.Error(apperrors.New(apperrors.KindNotFound, "User not found"))
			return
		}
		_ = c.Error(apperrors.Wrap(apperrors.KindInternal, "failed to load user", err))
		return
	}

	updated, err := a.users.Update(c.Request.Context(), targetID, map[string]interface{}{
		"is_active": !user.IsActive,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = c.Error(apperrors.New(apperrors.KindNotFound, "User not found"))
			return
		}
		_ = c.Error(apperrors.Wrap(apperrors.KindInternal, "failed to update user", err))
		return
	}

	verb := "deactivated"
	if updated.IsActive {
		verb = "activated"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User " + verb + " successfully",
		"user":    updated.Sanitized(),
	})
}

func (a *AdminController) DeleteUser(c *gin.Context) {
	targetID := c.Param("id")
	caller, _ := middleware.CurrentUser(c)
	if caller != nil && caller.ID == targetID {
		_ = c.Error(apperrors.New(apperrors.KindSelfAction, "You cannot delete your own account"))
		return
	}

	if err := a.users.SoftDelete(c.Request.Context(), targetID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			_ = c.Error(apperrors.New(apperrors.KindNotFound, "User not found"))
			return
		}
		_ = c.Error(apperrors.Wrap(apperrors.KindInternal, "failed to delete user", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func parsePositiveInt(v string, def int) int {
	if v = strings.TrimSpace(v); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
