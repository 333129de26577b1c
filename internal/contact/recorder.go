// Package contact records contact form submissions.
package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sumanurawat/phoenix-sub003/internal/models"
	"github.com/sumanurawat/phoenix-sub003/internal/storage"
)

// ConfirmationMessage is returned to the sender after a successful submit.
const ConfirmationMessage = "Thank you for your message! We'll get back to you soon."

// ValidationError reasons for payloads that could not be read as a form.
const (
	ReasonNoData      = "no data provided"
	ReasonInvalidJSON = "invalid JSON body"
)

// ValidationError means the payload was absent, unparseable or incomplete.
type ValidationError struct {
	Reason  string
	Missing []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("missing required fields: %s", strings.Join(e.Missing, ", "))
	}
	return e.Reason
}

// StorageError wraps a failed write.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string { return "store submission: " + e.Err.Error() }
func (e *StorageError) Unwrap() error { return e.Err }

// Recorder validates contact forms and persists them as submissions.
// It holds no per-call state and is safe for concurrent use.
type Recorder struct {
	store storage.SubmissionStore
	log   *zap.Logger
	newID func() string
}

// NewRecorder returns a recorder that attaches models.Recipients to every
// submission.
func NewRecorder(store storage.SubmissionStore, log *zap.Logger) *Recorder {
	if log == nil {
		log = zap.NewNop()
	}
	return &Recorder{
		store: store,
		log:   log.Named("contact"),
		newID: uuid.NewString,
	}
}

// ParseForm decodes a JSON request body. Empty bodies, malformed JSON and
// non-object values are validation failures.
func ParseForm(body []byte) (*models.ContactForm, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, &ValidationError{Reason: ReasonNoData}
	}
	var f models.ContactForm
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil, &ValidationError{Reason: ReasonInvalidJSON}
	}
	return &f, nil
}

// Submit validates f and stores it as a new submission. The returned
// submission carries the storage-assigned timestamp.
func (r *Recorder) Submit(ctx context.Context, f *models.ContactForm) (models.Submission, error) {
	if f == nil {
		return models.Submission{}, &ValidationError{Reason: ReasonNoData}
	}
	if missing := f.MissingFields(); len(missing) > 0 {
		return models.Submission{}, &ValidationError{Missing: missing}
	}

	sub := models.NewSubmission(r.newID(), *f, models.Recipients)

	r.log.Info("contact form submission",
		zap.String("first_name", sub.FirstName),
		zap.String("last_name", sub.LastName),
		zap.String("email", sub.Email),
		zap.String("message", sub.Message),
		zap.Strings("recipients", sub.Recipients))

	stored, err := r.store.CreateSubmission(ctx, sub)
	if err != nil {
		r.log.Error("failed to store contact submission",
			zap.String("submission_id", sub.ID),
			zap.String("email", sub.Email),
			zap.Error(err))
		return models.Submission{}, &StorageError{Err: err}
	}

	r.log.Info("contact submission stored",
		zap.String("submission_id", stored.ID),
		zap.Time("timestamp", stored.Timestamp))
	return stored, nil
}
