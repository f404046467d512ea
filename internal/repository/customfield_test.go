package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/datapoolml/outreach-crm/internal/testhelpers"
)

func newCustomFieldRepo(t *testing.T) (*CustomFieldRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	repo := NewCustomFieldRepository(db, testhelpers.NewTestLogger())
	return repo, mock, func() { db.Close() }
}

func TestCustomFieldRepository_List(t *testing.T) {
	repo, mock, cleanup := newCustomFieldRepo(t)
	defer cleanup()

	now := time.Now()
	mock.ExpectQuery("FROM custom_fields").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow("cf-1", "region", now, now).
			AddRow("cf-2", "source", now, now))

	fields, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "region", fields[0].Name)
	assert.Equal(t, "source", fields[1].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomFieldRepository_Create(t *testing.T) {
	repo, mock, cleanup := newCustomFieldRepo(t)
	defer cleanup()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("Region").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectExec("INSERT INTO custom_fields").
		WillReturnResult(sqlmock.NewResult(0, 1))

	field, err := repo.Create(context.Background(), "Region")
	require.NoError(t, err)
	assert.NotEmpty(t, field.ID)
	assert.Equal(t, "Region", field.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomFieldRepository_Create_Duplicate(t *testing.T) {
	repo, mock, cleanup := newCustomFieldRepo(t)
	defer cleanup()

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("region").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	_, err := repo.Create(context.Background(), "region")
	assert.ErrorIs(t, err, ErrDuplicate)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomFieldRepository_EnsureMany(t *testing.T) {
	repo, mock, cleanup := newCustomFieldRepo(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("ON CONFLICT \\(name\\) DO NOTHING").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("ON CONFLICT \\(name\\) DO NOTHING").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.EnsureMany(context.Background(), []string{"region", "source"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCustomFieldRepository_EnsureMany_Empty(t *testing.T) {
	repo, _, cleanup := newCustomFieldRepo(t)
	defer cleanup()

	require.NoError(t, repo.EnsureMany(context.Background(), nil))
}

func TestCustomFieldRepository_EnsureMany_RollsBackOnFailure(t *testing.T) {
	repo, mock, cleanup := newCustomFieldRepo(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec("ON CONFLICT \\(name\\) DO NOTHING").WillReturnError(errors.New("boom"))
	mock.ExpectRollback()

	err := repo.EnsureMany(context.Background(), []string{"region"})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
