package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"startup-directory.backend/internal/config"
	"startup-directory.backend/internal/domain/entities"
	"startup-directory.backend/pkg/jwt"
)

// devtoken signs a session token with the local AUTH_JWT_SECRET so the API
// can be exercised without the identity provider.
func main() {
	role := flag.String("role", string(entities.UserRoleEntrepreneur), "role: entrepreneur, investor or admin")
	email := flag.String("email", "dev@example.com", "email claim")
	name := flag.String("name", "Local Developer", "full name claim")
	userID := flag.String("user", "", "user ID (random when empty)")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()

	token, id, err := buildToken(cfg.Auth, *userID, *role, *email, *name, *ttl)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("USER_ID=%s\n", id)
	fmt.Printf("TOKEN=%s\n", token)
}

func validateInputs(secret, role string, ttl time.Duration) error {
	if secret == "" {
		return fmt.Errorf("AUTH_JWT_SECRET is not set")
	}
	if !entities.UserRole(role).Valid() {
		return fmt.Errorf("invalid role: %s (allowed: entrepreneur, investor, admin)", role)
	}
	if ttl <= 0 {
		return fmt.Errorf("invalid ttl: %s", ttl)
	}
	return nil
}

func buildToken(auth config.AuthConfig, rawID, role, email, name string, ttl time.Duration) (string, uuid.UUID, error) {
	if err := validateInputs(auth.JWTSecret, role, ttl); err != nil {
		return "", uuid.Nil, err
	}

	id := uuid.New()
	if rawID != "" {
		parsed, err := uuid.Parse(rawID)
		if err != nil {
			return "", uuid.Nil, fmt.Errorf("invalid user ID: %w", err)
		}
		id = parsed
	}

	var opts []jwt.Option
	if auth.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(auth.Issuer))
	}
	token, err := jwt.NewJWTService(auth.JWTSecret, opts...).GenerateToken(id, email, role, name, ttl)
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, id, nil
}
