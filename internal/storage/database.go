package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/sumanurawat/phoenix-sub003/internal/models"
)

const uniqueViolation = pq.ErrorCode("23505")

// Database stores submissions in PostgreSQL
type Database struct {
	db *sqlx.DB
}

// NewDatabase wraps an open connection. The schema must already exist.
func NewDatabase(db *sqlx.DB) *Database {
	return &Database{db: db}
}

// Close closes the database connection
func (d *Database) Close() error {
	return d.db.Close()
}

// CreateSubmission inserts one row; created_at comes from the database clock.
func (d *Database) CreateSubmission(ctx context.Context, s models.Submission) (models.Submission, error) {
	var created time.Time
	err := d.db.QueryRowxContext(ctx, `
		INSERT INTO contact_submissions (id, first_name, last_name, email, message, recipients)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, s.ID, s.FirstName, s.LastName, s.Email, s.Message, pq.Array(s.Recipients)).Scan(&created)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return models.Submission{}, fmt.Errorf("insert %s: %w", s.ID, ErrDuplicate)
		}
		return models.Submission{}, fmt.Errorf("insert %s: %w", s.ID, err)
	}

	out := s.Clone()
	out.Timestamp = created.UTC()
	return out, nil
}

// GetSubmission gets a submission by ID
func (d *Database) GetSubmission(ctx context.Context, id string) (models.Submission, error) {
	var s models.Submission
	err := d.db.QueryRowxContext(ctx, `
		SELECT id, first_name, last_name, email, message, recipients, created_at
		FROM contact_submissions WHERE id = $1
	`, id).Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &s.Message, pq.Array(&s.Recipients), &s.Timestamp)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Submission{}, ErrNotFound
	}
	if err != nil {
		return models.Submission{}, fmt.Errorf("select %s: %w", id, err)
	}
	s.Timestamp = s.Timestamp.UTC()
	return s, nil
}
