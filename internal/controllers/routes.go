package controllers

import (
	"github.com/gin-gonic/gin"

	"userhub/internal/config"
	"userhub/internal/middleware"
	"userhub/internal/models"
	"userhub/internal/repositories"
	"userhub/internal/token"
	"userhub/internal/utils"
)

// NewRouter builds the full gin engine: error mapping, public auth
// routes, token-gated user routes and admin routes behind the role gate.
func NewRouter(cfg *config.Config, users repositories.UserRepository, tokens *token.Service, hasher *utils.Hasher, email *utils.SMTPClient) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.ErrorHandler(cfg))

	authCtrl := NewAuthController(users, tokens, hasher, email)
	userCtrl := NewUserController(users, hasher)
	adminCtrl := NewAdminController(users)

	auth := r.Group("/auth")
	{
		auth.POST("/register", authCtrl.Register)
		auth.POST("/login", authCtrl.Login)
		auth.POST("/logout", authCtrl.Logout)
	}

	user := r.Group("/user")
	user.Use(middleware.Authenticate(tokens, users))
	{
		user.GET("/profile", userCtrl.Profile)
		user.PUT("/profile", userCtrl.UpdateProfile)
	}

	admin := r.Group("/admin")
	admin.Use(middleware.Authenticate(tokens, users))
	admin.Use(middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/users", adminCtrl.ListUsers)
		admin.GET("/users/:id", adminCtrl.GetUser)
		admin.PATCH("/users/:id/toggle-status", adminCtrl.ToggleStatus)
		admin.DELETE("/users/:id", adminCtrl.DeleteUser)
	}

	return r
}
