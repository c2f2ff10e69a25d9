package devserver

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/fydblock/fydadmin/pkg/logger"
)

// seed guarantees one admin account exists so a fresh database is usable.
func (s *Server) seed() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	email := strings.ToLower(strings.TrimSpace(s.cfg.SeedAdminEmail))
	existing, err := s.getUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("seed lookup: %w", err)
	}
	if existing != nil {
		return nil
	}

	password := s.cfg.SeedAdminPassword
	if password == "" {
		buf := make([]byte, 12)
		if _, err := rand.Read(buf); err != nil {
			return fmt.Errorf("seed password: %w", err)
		}
		password = hex.EncodeToString(buf)
		// Printed once on first boot; there is no other way to learn it.
		logger.Infof("seeded admin %s with password %s", email, password)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		return fmt.Errorf("seed hash: %w", err)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	return s.insertUser(ctx, userRow{
		ID:           uuid.NewString(),
		DisplayID:    "USR-0001",
		Email:        email,
		FullName:     "Platform Admin",
		PasswordHash: string(hash),
		Role:         "admin",
		Status:       "Active",
		Plan:         "Pro",
		Registered:   now,
	})
}
