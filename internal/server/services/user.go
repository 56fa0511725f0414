// Package services contains server-side business logic. This file implements
// UserService, which handles registration and login: it owns the password
// secrecy guarantees and is the only place session tokens are minted.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avdonin/taskhub/internal/common"
	"github.com/avdonin/taskhub/internal/cryptox"
	"github.com/avdonin/taskhub/internal/server/auth"
	"github.com/avdonin/taskhub/internal/server/config"
	"github.com/avdonin/taskhub/internal/server/models"
	"github.com/avdonin/taskhub/internal/server/repositories/repomanager"
)

// UserService provides authentication-related operations:
// - Register: create users with salted password digests
// - Login: verify credentials and mint a session token
// - GetUserByLogin: resolve a verified token's username to a user row
type UserService struct {
	db                          *sql.DB
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                          db,
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
	}
}

// Register creates a new user from the given credentials. A fresh random
// salt is generated per user and only the derived digest is persisted.
// A taken username (including one lost in a concurrent race) comes back as
// common.ErrorDuplicateUsername.
func (s *UserService) Register(ctx context.Context, username string, password string) (*models.User, error) {
	salt := cryptox.NewSalt()
	hash := cryptox.HashPassword([]byte(password), salt)

	user := &models.User{UserName: username, Salt: salt, PasswordHash: hash}
	repo := s.repomanager.Users(s.db)
	u, err := repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorDuplicateUsername) {
			return nil, common.ErrorDuplicateUsername
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies the credentials and, on success, returns a signed session
// token carrying the username. A missing user and a wrong password are
// indistinguishable to the caller: both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, username string, password string) (string, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByLogin(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", common.ErrorInternal
	}

	if !cryptox.VerifyPassword([]byte(password), user.Salt, user.PasswordHash) {
		return "", common.ErrorUnauthorized
	}

	token, err := auth.GenerateToken(user.UserName, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return "", common.ErrorInternal
	}
	return token, nil
}

// GetUserByLogin resolves a username to its user record. Used by the token
// middleware after signature verification.
func (s *UserService) GetUserByLogin(ctx context.Context, username string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	return repo.GetUserByLogin(ctx, username)
}
