// Package storage holds the document-store drivers for contact submissions.
// Every driver creates documents atomically in the Collection and stamps the
// write time; none of them updates or deletes an existing document.
package storage

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/sumanurawat/phoenix-sub003/internal/models"
)

// Collection is the fixed collection (table, directory) holding submissions.
const Collection = "contact_submissions"

var (
	ErrNotFound  = errors.New("submission not found")
	ErrDuplicate = errors.New("submission id already exists")
)

// SubmissionStore is the write side used by the recorder.
type SubmissionStore interface {
	// CreateSubmission stores s as a new document and returns it with the
	// store-assigned UTC timestamp.
	CreateSubmission(ctx context.Context, s models.Submission) (models.Submission, error)
}

// SubmissionReader looks up a stored submission by id.
type SubmissionReader interface {
	GetSubmission(ctx context.Context, id string) (models.Submission, error)
}

// Store is implemented by every driver in this package.
type Store interface {
	SubmissionStore
	SubmissionReader
	Close() error
}

var nowUTC = func() time.Time { return time.Now().UTC() }

// writeClock hands out UTC write times that never go backwards within one
// store, even when the wall clock is stepped back between writes.
type writeClock struct {
	mu   sync.Mutex
	last time.Time
}

func (c *writeClock) next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	t := nowUTC()
	if t.Before(c.last) {
		t = c.last
	}
	c.last = t
	return t
}

var (
	_ Store = (*Database)(nil)
	_ Store = (*FileStorage)(nil)
	_ Store = (*Memory)(nil)
)
