package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// User is an account row. PasswordHash never leaves this package boundary in
// API responses.
type User struct {
	ID           int64     `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// CreateUser inserts an account and returns it with its assigned ID.
func (p *PgStore) CreateUser(ctx context.Context, name, email, passwordHash, role string) (*User, error) {
	stmt := `
INSERT INTO users (name, email, password_hash, role)
VALUES ($1,$2,$3,$4)
RETURNING id, name, email, password_hash, role, created_at
`
	var u User
	if err := p.db.GetContext(ctx, &u, stmt, name, email, passwordHash, role); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail fetches an account by email, or nil when unknown.
func (p *PgStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := p.db.GetContext(ctx, &u, "SELECT id, name, email, password_hash, role, created_at FROM users WHERE email = $1", email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SaveToken stores the digest of an issued bearer token.
func (p *PgStore) SaveToken(ctx context.Context, tokenDigest string, userID int64) error {
	_, err := p.db.ExecContext(ctx,
		"INSERT INTO user_tokens (token_digest, user_id) VALUES ($1,$2)", tokenDigest, userID)
	return err
}

// DeleteToken revokes an issued token by digest.
func (p *PgStore) DeleteToken(ctx context.Context, tokenDigest string) error {
	_, err := p.db.ExecContext(ctx, "DELETE FROM user_tokens WHERE token_digest = $1", tokenDigest)
	return err
}

// GetUserByTokenDigest resolves a token digest back to its account, or nil
// when the token is unknown or revoked.
func (p *PgStore) GetUserByTokenDigest(ctx context.Context, tokenDigest string) (*User, error) {
	query := `
SELECT u.id, u.name, u.email, u.password_hash, u.role, u.created_at
FROM users u
JOIN user_tokens t ON t.user_id = u.id
WHERE t.token_digest = $1
`
	var u User
	err := p.db.GetContext(ctx, &u, query, tokenDigest)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
