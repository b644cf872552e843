// Command tokengen signs a bearer token for local development. The secret
// defaults to COGNISPARK_AUTH_JWT_SECRET so tokens match a locally running
// server.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/config"
	"github.com/joshuaking1/cognispark-ai-sub000/internal/service/auth"
	"github.com/spf13/pflag"
)

func main() {
	flags := pflag.NewFlagSet("tokengen", pflag.ExitOnError)
	secret := flags.String("secret", os.Getenv(config.EnvPrefix+"_AUTH_JWT_SECRET"), "HMAC signing secret (at least 32 characters)")
	user := flags.String("user", "", "user id to sign for; a new one is generated when empty")
	lifetime := flags.Int("lifetime", 24*60, "token lifetime in minutes")
	_ = flags.Parse(os.Args[1:])

	token, userID, err := generate(*secret, *user, *lifetime)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tokengen: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "user id: %s\n", userID)
	fmt.Println(token)
}

func generate(secret, user string, lifetimeMinutes int) (string, uuid.UUID, error) {
	userID := uuid.New()
	if user != "" {
		parsed, err := uuid.Parse(user)
		if err != nil {
			return "", uuid.Nil, fmt.Errorf("invalid user id: %w", err)
		}
		userID = parsed
	}

	svc, err := auth.NewJWTService(config.AuthConfig{JWTSecret: secret, TokenLifetimeMinutes: lifetimeMinutes})
	if err != nil {
		return "", uuid.Nil, err
	}
	token, err := svc.GenerateToken(context.Background(), userID)
	if err != nil {
		return "", uuid.Nil, fmt.Errorf("sign token: %w", err)
	}
	return token, userID, nil
}
