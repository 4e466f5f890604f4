package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetops/fleet-logistics-api/internal/models"
)

func newLoadMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func moverRows(status models.MoverStatus, maxWeight int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "max_weight", "status", "created_at", "updated_at"}).
		AddRow("m1", maxWeight, status, time.Now(), time.Now())
}

func TestLoadRepositoryCommitLoad(t *testing.T) {
	db, mock, cleanup := newLoadMock(t)
	defer cleanup()
	repo := NewLoadRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM movers WHERE id = $1 FOR UPDATE")).
		WithArgs("m1").
		WillReturnRows(moverRows(models.StatusResting, 100))
	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(lr.quantity * i.weight), 0)")).
		WithArgs("m1", models.ActionLoaded).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(30))
	mock.ExpectExec("INSERT INTO load_records").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO logs").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE movers SET status").
		WithArgs("m1", models.StatusLoading, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	records, err := repo.CommitLoad(context.Background(), "m1", 40,
		[]models.LoadRecord{{ItemID: "i1", Quantity: 2}})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.NotEmpty(t, records[0].ID)
	assert.Equal(t, "m1", records[0].MoverID)
	assert.Equal(t, models.ActionLoaded, records[0].Action)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadRepositoryCommitLoadWrongState(t *testing.T) {
	db, mock, cleanup := newLoadMock(t)
	defer cleanup()
	repo := NewLoadRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM movers WHERE id = $1 FOR UPDATE")).
		WithArgs("m1").
		WillReturnRows(moverRows(models.StatusOnMission, 100))
	mock.ExpectRollback()

	_, err := repo.CommitLoad(context.Background(), "m1", 40,
		[]models.LoadRecord{{ItemID: "i1", Quantity: 2}})
	var conflict *StateConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, models.StatusOnMission, conflict.Current)
	assert.Equal(t, models.StatusResting, conflict.Required)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadRepositoryCommitLoadOverCapacity(t *testing.T) {
	db, mock, cleanup := newLoadMock(t)
	defer cleanup()
	repo := NewLoadRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("FROM movers WHERE id = $1 FOR UPDATE")).
		WithArgs("m1").
		WillReturnRows(moverRows(models.StatusResting, 100))
	mock.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(lr.quantity * i.weight), 0)")).
		WithArgs("m1", models.ActionLoaded).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(90))
	mock.ExpectRollback()

	_, err := repo.CommitLoad(context.Background(), "m1", 40,
		[]models.LoadRecord{{ItemID: "i1", Quantity: 2}})
	var capacity *CapacityError
	require.ErrorAs(t, err, &capacity)
	assert.Equal(t, 90, capacity.Current)
	assert.Equal(t, 40, capacity.Requested)
	assert.Equal(t, 100, capacity.Max)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadRepositoryStartMission(t *testing.T) {
	db, mock, cleanup := newLoadMock(t)
	defer cleanup()
	repo := NewLoadRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE movers SET status = $3")).
		WithArgs("m1", models.StatusLoading, models.StatusOnMission, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO logs").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.StartMission(context.Background(), "m1", "r1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadRepositoryStartMissionConflict(t *testing.T) {
	db, mock, cleanup := newLoadMock(t)
	defer cleanup()
	repo := NewLoadRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE movers SET status = $3")).
		WithArgs("m1", models.StatusLoading, models.StatusOnMission, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT status FROM movers").
		WithArgs("m1").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(models.StatusResting))
	mock.ExpectRollback()

	err := repo.StartMission(context.Background(), "m1", "r1")
	var conflict *StateConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, models.StatusResting, conflict.Current)
	assert.Equal(t, models.StatusLoading, conflict.Required)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadRepositoryEndMissionUnloadsAll(t *testing.T) {
	db, mock, cleanup := newLoadMock(t)
	defer cleanup()
	repo := NewLoadRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE movers SET status = $3")).
		WithArgs("m1", models.StatusOnMission, models.StatusResting, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("UPDATE load_records SET action").
		WithArgs("m1", models.ActionUnloaded, models.ActionLoaded).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("r1").AddRow("r2"))
	mock.ExpectExec("INSERT INTO logs").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO logs").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	err := repo.EndMission(context.Background(), "m1", "r1")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadRepositoryCompletedMissions(t *testing.T) {
	db, mock, cleanup := newLoadMock(t)
	defer cleanup()
	repo := NewLoadRepository(db)

	rows := sqlmock.NewRows([]string{"mover_id", "mission_count", "max_weight", "status", "created_at", "updated_at"}).
		AddRow("m2", 5, 300, models.StatusResting, time.Now(), time.Now()).
		AddRow("m1", 2, 500, models.StatusLoading, time.Now(), time.Now())
	mock.ExpectQuery("SELECT lr.mover_id, COUNT").
		WithArgs(models.ActionUnloaded).
		WillReturnRows(rows)

	board, err := repo.CompletedMissions(context.Background())
	require.NoError(t, err)
	require.Len(t, board, 2)
	assert.Equal(t, "m2", board[0].MoverID)
	assert.Equal(t, 5, board[0].MissionCount)
	assert.Equal(t, 300, board[0].Mover.MaxWeight)
	assert.Equal(t, "m1", board[1].MoverID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
