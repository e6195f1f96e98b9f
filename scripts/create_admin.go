// Creates a portal account, typically the first admin after a fresh deploy.
//
// Usage: go run scripts/create_admin.go -email admin@example.com -password '...' [-name Admin] [-role admin]

package main

import (
	"flag"
	"log"

	"teacher_portal_backend/internal/config"
	"teacher_portal_backend/internal/model"
	"teacher_portal_backend/internal/repository"
	"teacher_portal_backend/internal/service"
	"teacher_portal_backend/pkg/database"
	"teacher_portal_backend/pkg/logger"

	"github.com/joho/godotenv"
)

func main() {
	configDir := flag.String("config", "configs", "directory containing config.yaml")
	email := flag.String("email", "", "login email")
	password := flag.String("password", "", "login password, at least 8 characters")
	name := flag.String("name", "Administrator", "display name")
	role := flag.String("role", string(model.Admin), "admin or staff")
	flag.Parse()

	if *email == "" || len(*password) < 8 {
		log.Fatal("-email and a -password of at least 8 characters are required")
	}
	if *role != string(model.Admin) && *role != string(model.Staff) {
		log.Fatalf("unknown role %q", *role)
	}

	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate: %v", err)
	}

	auth := service.NewAuthService(repository.NewUserRepository(db), cfg)
	user := &model.User{
		Name:     *name,
		Email:    *email,
		Password: *password,
		Role:     model.UserRole(*role),
	}
	if err := auth.CreateUser(user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	log.Printf("Created %s account %s (id %d)", user.Role, user.Email, user.ID)
}
