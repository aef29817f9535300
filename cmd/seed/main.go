// Seeds an admin and a demo user so a fresh environment is usable
// immediately. Safe to run repeatedly; existing accounts are left alone.
package main

import (
	"context"
	"errors"
	"log"

	"github.com/joho/godotenv"

	"userhub/internal/config"
	"userhub/internal/db"
	"userhub/internal/models"
	"userhub/internal/repositories"
	"userhub/internal/utils"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("config: ", err)
	}

	gdb, err := db.Init(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = db.Close(gdb) }()

	users := repositories.NewGormUserRepository(gdb)
	hasher := utils.NewHasher(cfg.BcryptCost)
	ctx := context.Background()

	seed(ctx, users, hasher, models.User{
		FullName: "Admin User",
		Email:    "admin@example.com",
		Role:     models.RoleAdmin,
		IsActive: true,
	}, "Admin123!")

	seed(ctx, users, hasher, models.User{
		FullName: "Test User",
		Email:    "user@example.com",
		Role:     models.RoleUser,
		IsActive: true,
	}, "User1234!")

	log.Println("seeding completed")
}

func seed(ctx context.Context, users repositories.UserRepository, hasher *utils.Hasher, user models.User, password string) {
	existing, err := users.FindByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		log.Fatal("lookup failed: ", err)
	}
	if existing != nil && !existing.DeletedAt.Valid {
		log.Printf("%s already exists", user.Email)
		return
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		log.Fatal("hash failed: ", err)
	}
	user.Password = hash
	if err := users.Create(ctx, &user); err != nil {
		log.Fatal("create failed: ", err)
	}
	log.Printf("created %s (%s)", user.Email, user.Role)
}
