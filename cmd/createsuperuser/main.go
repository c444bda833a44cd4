package main

import (
	"context"
	"errors"
	"flag"
	"log"

	"blaemart-be/internal/config"
	"blaemart-be/internal/db"
	"blaemart-be/internal/user"
)

func main() {
	email := flag.String("email", "", "superuser email (required)")
	password := flag.String("password", "", "superuser password (required)")
	flag.Parse()

	if *email == "" || *password == "" {
		flag.Usage()
		log.Fatal("createsuperuser: -email and -password are required")
	}

	cfg := config.LoadConfig()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("createsuperuser: %v", err)
	}
	defer database.Close()

	svc := user.NewService(user.NewRepository(database))

	u, err := svc.CreateSuperuser(context.Background(), user.SuperuserInput{
		Email:    *email,
		Password: *password,
	})
	if errors.Is(err, user.ErrEmailExists) {
		log.Fatalf("createsuperuser: a user with email %s already exists", *email)
	}
	if err != nil {
		log.Fatalf("createsuperuser: %v", err)
	}

	log.Printf("superuser %s created (id %d)", u.Email, u.ID)
}
