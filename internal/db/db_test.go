package db

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDSN(t *testing.T) {
	assert.Equal(t,
		"host=db port=5432 user=u password=p dbname=contact sslmode=disable",
		DSN("db", 5432, "u", "p", "contact", "disable"))
}

func TestMigrate(t *testing.T) {
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer raw.Close()
	db := sqlx.NewDb(raw, "postgres")

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS contact_submissions")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, Migrate(context.Background(), db))

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))
	err = Migrate(context.Background(), db)
	assert.ErrorContains(t, err, "permission denied")

	assert.NoError(t, mock.ExpectationsWereMet())
}
