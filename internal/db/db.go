package db

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/sumanurawat/phoenix-sub003/internal/config"
)

// Schema creates the submissions collection. Safe to run repeatedly.
const Schema = `
CREATE TABLE IF NOT EXISTS contact_submissions (
	id         TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name  TEXT NOT NULL,
	email      TEXT NOT NULL,
	message    TEXT NOT NULL,
	recipients TEXT[] NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func Connect(ctx context.Context, c config.DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", DSN(c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode))
	if err != nil {
		return nil, fmt.Errorf("connect postgres %s:%d: %w", c.Host, c.Port, err)
	}
	return db, nil
}

func DSN(host string, port int, user, pass, name, ssl string) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, pass, name, ssl,
	)
}

func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("migrate contact_submissions: %w", err)
	}
	return nil
}
