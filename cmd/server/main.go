package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"userhub/internal/config"
	"userhub/internal/controllers"
	"userhub/internal/db"
	"userhub/internal/repositories"
	"userhub/internal/token"
	"userhub/internal/utils"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	gdb, err := db.Init(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			log.Println("closing db: ", err)
		}
	}()

	users := repositories.NewGormUserRepository(gdb)
	tokens := token.NewService(cfg.JWTSecret, cfg.JWTTTL)
	hasher := utils.NewHasher(cfg.BcryptCost)
	email := utils.NewSMTPClient(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.FromEmail)

	r := controllers.NewRouter(cfg, users, tokens, hasher, email)

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
