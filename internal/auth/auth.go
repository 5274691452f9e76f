// Package auth provides account registration, login and bearer-token
// authentication, plus the role-based permission check the API consults
// before running any core logic.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/arjun/news_aggregator/internal/store"
)

// ErrInvalidCredentials covers unknown emails and wrong passwords alike, so
// responses never reveal which one failed.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken marks a registration against an existing email.
var ErrEmailTaken = errors.New("email already registered")

type UserStore interface {
	CreateUser(ctx context.Context, name, email, passwordHash, role string) (*store.User, error)
	GetUserByEmail(ctx context.Context, email string) (*store.User, error)
	SaveToken(ctx context.Context, tokenDigest string, userID int64) error
	DeleteToken(ctx context.Context, tokenDigest string) error
	GetUserByTokenDigest(ctx context.Context, tokenDigest string) (*store.User, error)
}

type Service struct {
	store UserStore
}

func NewService(s UserStore) *Service {
	return &Service{store: s}
}

// Register creates an account with the default role and issues its first
// token.
func (s *Service) Register(ctx context.Context, name, email, password string) (*store.User, string, error) {
	existing, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}
	user, err := s.store.CreateUser(ctx, name, email, string(hash), "user")
	if err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues a fresh bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (*store.User, string, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("lookup user: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.issueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Logout revokes the presented token.
func (s *Service) Logout(ctx context.Context, token string) error {
	return s.store.DeleteToken(ctx, digest(token))
}

// Authenticate resolves a bearer token to its account, or nil when the token
// is unknown or revoked.
func (s *Service) Authenticate(ctx context.Context, token string) (*store.User, error) {
	return s.store.GetUserByTokenDigest(ctx, digest(token))
}

func (s *Service) issueToken(ctx context.Context, userID int64) (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("token entropy: %w", err)
	}
	token := hex.EncodeToString(raw)
	if err := s.store.SaveToken(ctx, digest(token), userID); err != nil {
		return "", fmt.Errorf("save token: %w", err)
	}
	return token, nil
}

// Only the sha256 digest of a token is persisted.
func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
