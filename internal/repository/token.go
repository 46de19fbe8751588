// Package repository provides PostgreSQL persistence for the client token.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresTokenRepository keeps the authorization token in a PostgreSQL table,
// for clients without a durable local disk. It satisfies token.Store.
type PostgresTokenRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
	// Slot is the row key the token is stored under.
	Slot string
}

// NewPostgresTokenRepository creates a repository storing the token under slot.
// db must be a valid *sql.DB with the client_tokens table created (see db.InitPostgres).
func NewPostgresTokenRepository(db *sql.DB, slot string) *PostgresTokenRepository {
	return &PostgresTokenRepository{DB: db, Slot: slot}
}

// Save inserts the token or replaces the existing one.
func (r *PostgresTokenRepository) Save(ctx context.Context, token string) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO client_tokens (slot, token, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (slot) DO UPDATE SET
			token = EXCLUDED.token,
			updated_at = NOW()
	`, r.Slot, token)
	if err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

// Drop deletes the token row. A missing row is not an error.
func (r *PostgresTokenRepository) Drop(ctx context.Context) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM client_tokens WHERE slot = $1`, r.Slot); err != nil {
		return fmt.Errorf("drop token: %w", err)
	}
	return nil
}

// Load returns the stored token or "" when the slot is empty.
func (r *PostgresTokenRepository) Load(ctx context.Context) (string, error) {
	var token string
	err := r.DB.QueryRowContext(ctx, `SELECT token FROM client_tokens WHERE slot = $1`, r.Slot).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return token, nil
}
