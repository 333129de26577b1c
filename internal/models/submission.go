package models

import "time"

// Recipients is the fixed list recorded on every submission.
var Recipients = []string{"sumanurawat12@gmail.com", "vrushcodes@gmail.com"}

// Submission represents a persisted contact form record
type Submission struct {
	ID         string    `db:"id" json:"id"`
	FirstName  string    `db:"first_name" json:"firstName"`
	LastName   string    `db:"last_name" json:"lastName"`
	Email      string    `db:"email" json:"email"`
	Message    string    `db:"message" json:"message"`
	Timestamp  time.Time `db:"created_at" json:"timestamp"`
	Recipients []string  `db:"recipients" json:"recipients"`
}

// Clone returns a copy that shares no slices with s.
func (s Submission) Clone() Submission {
	c := s
	if s.Recipients != nil {
		c.Recipients = append([]string(nil), s.Recipients...)
	}
	return c
}

// ContactForm is the inbound contact form payload
type ContactForm struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

// MissingFields returns the JSON names of required fields that are empty,
// in declaration order. Any non-empty value is accepted as is.
func (f ContactForm) MissingFields() []string {
	var missing []string
	for _, fld := range []struct{ name, value string }{
		{"firstName", f.FirstName},
		{"lastName", f.LastName},
		{"email", f.Email},
		{"message", f.Message},
	} {
		if fld.value == "" {
			missing = append(missing, fld.name)
		}
	}
	return missing
}

// NewSubmission builds an unsaved submission from a validated form.
// The timestamp is left zero for the storage layer to assign.
func NewSubmission(id string, f ContactForm, recipients []string) Submission {
	return Submission{
		ID:         id,
		FirstName:  f.FirstName,
		LastName:   f.LastName,
		Email:      f.Email,
		Message:    f.Message,
		Recipients: append([]string(nil), recipients...),
	}
}
