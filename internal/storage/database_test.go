package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDatabase(t *testing.T) (*Database, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { raw.Close() })
	return NewDatabase(sqlx.NewDb(raw, "postgres")), mock
}

var insertSQL = regexp.QuoteMeta("INSERT INTO contact_submissions")

func TestDatabaseCreateUsesDatabaseClock(t *testing.T) {
	d, mock := newMockDatabase(t)
	dbNow := time.Date(2026, 10, 18, 11, 0, 0, 0, time.FixedZone("CEST", 2*3600))

	mock.ExpectQuery(insertSQL).
		WithArgs("sub-1", "Jane", "Doe", "jane@x.com", "Hello", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(dbNow))

	out, err := d.CreateSubmission(context.Background(), sample("sub-1"))
	require.NoError(t, err)
	assert.True(t, out.Timestamp.Equal(dbNow))
	assert.Equal(t, time.UTC, out.Timestamp.Location())
	assert.Equal(t, []string{"sumanurawat12@gmail.com", "vrushcodes@gmail.com"}, out.Recipients)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDatabaseCreateErrors(t *testing.T) {
	t.Run("unique violation", func(t *testing.T) {
		d, mock := newMockDatabase(t)
		mock.ExpectQuery(insertSQL).WillReturnError(&pq.Error{Code: "23505"})

		_, err := d.CreateSubmission(context.Background(), sample("dup"))
		assert.ErrorIs(t, err, ErrDuplicate)
	})

	t.Run("connection failure", func(t *testing.T) {
		d, mock := newMockDatabase(t)
		mock.ExpectQuery(insertSQL).WillReturnError(errors.New("connection refused"))

		_, err := d.CreateSubmission(context.Background(), sample("x"))
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrDuplicate)
		assert.ErrorContains(t, err, "connection refused")
	})
}

func TestDatabaseGet(t *testing.T) {
	d, mock := newMockDatabase(t)
	at := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	selectSQL := regexp.QuoteMeta("FROM contact_submissions WHERE id = $1")

	mock.ExpectQuery(selectSQL).WithArgs("sub-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name", "email", "message", "recipients", "created_at"}).
			AddRow("sub-1", "Jane", "Doe", "jane@x.com", "Hello", []byte("{sumanurawat12@gmail.com,vrushcodes@gmail.com}"), at))
	mock.ExpectQuery(selectSQL).WithArgs("absent").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := d.GetSubmission(context.Background(), "sub-1")
	require.NoError(t, err)
	assert.Equal(t, "Jane", got.FirstName)
	assert.Equal(t, []string{"sumanurawat12@gmail.com", "vrushcodes@gmail.com"}, got.Recipients)
	assert.True(t, got.Timestamp.Equal(at))

	_, err = d.GetSubmission(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
