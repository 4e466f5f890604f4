package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fleet-logistics-api/internal/models"
)

func newMoverMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestMoverRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newMoverMock(t)
	defer cleanup()
	repo := NewMoverRepository(db)

	mock.ExpectExec("INSERT INTO movers").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	mover := &models.Mover{MaxWeight: 500, Status: models.StatusResting}
	err := repo.Create(context.Background(), mover)
	require.NoError(t, err)
	assert.NotEmpty(t, mover.ID)
	assert.False(t, mover.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMoverRepositoryList(t *testing.T) {
	db, mock, cleanup := newMoverMock(t)
	defer cleanup()
	repo := NewMoverRepository(db)

	rows := sqlmock.NewRows([]string{"id", "max_weight", "status", "created_at", "updated_at"}).
		AddRow("m1", 500, models.StatusResting, time.Now(), time.Now()).
		AddRow("m2", 300, models.StatusOnMission, time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, max_weight, status, created_at, updated_at FROM movers").
		WillReturnRows(rows)

	movers, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, movers, 2)
	assert.Equal(t, models.StatusOnMission, movers[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMoverRepositoryFindByIDMissing(t *testing.T) {
	db, mock, cleanup := newMoverMock(t)
	defer cleanup()
	repo := NewMoverRepository(db)

	mock.ExpectQuery("SELECT id, max_weight, status, created_at, updated_at FROM movers WHERE id").
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
