package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fleetops/fleet-logistics-api/internal/models"
)

// StateConflictError reports that a mover was not in the state an operation
// requires at commit time.
type StateConflictError struct {
	Current  models.MoverStatus
	Required models.MoverStatus
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("mover is %s, operation requires %s", e.Current, e.Required)
}

// CapacityError reports that a load would overshoot the mover's capacity.
type CapacityError struct {
	Current   int
	Requested int
	Max       int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("load of %d onto current %d exceeds capacity %d", e.Requested, e.Current, e.Max)
}

// LoadRepository owns load records and the transactional lifecycle writes.
// Every mutating method commits its mutation and the paired audit log
// entries in a single transaction, or nothing at all.
type LoadRepository struct {
	db *sqlx.DB
}

// NewLoadRepository constructs a LoadRepository.
func NewLoadRepository(db *sqlx.DB) *LoadRepository {
	return &LoadRepository{db: db}
}

// FindRecordByID fetches a load record by ID. Returns sql.ErrNoRows when
// absent.
func (r *LoadRepository) FindRecordByID(ctx context.Context, id string) (*models.LoadRecord, error) {
	const query = `SELECT id, mover_id, item_id, quantity, action, created_at FROM load_records WHERE id = $1`
	var record models.LoadRecord
	if err := r.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, err
	}
	return &record, nil
}

// currentWeightQuery sums quantity x item weight over a mover's records in
// one action. Bound to Loaded inside the load transaction.
const currentWeightQuery = `SELECT COALESCE(SUM(lr.quantity * i.weight), 0)
        FROM load_records lr
        JOIN items i ON i.id = lr.item_id
        WHERE lr.mover_id = $1 AND lr.action = $2`

// CommitLoad executes the load operation atomically: it locks the mover row,
// re-validates status and capacity under the lock, inserts the load records
// and one audit log entry per record, and transitions the mover to Loading.
// Two racing loads serialize on the row lock; the loser fails its recheck
// with StateConflictError or CapacityError.
func (r *LoadRepository) CommitLoad(ctx context.Context, moverID string, totalWeight int, records []models.LoadRecord) ([]models.LoadRecord, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin load tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var mover models.Mover
	if err = tx.GetContext(ctx, &mover,
		`SELECT id, max_weight, status, created_at, updated_at FROM movers WHERE id = $1 FOR UPDATE`,
		moverID); err != nil {
		return nil, err
	}
	if mover.Status != models.StatusResting {
		err = &StateConflictError{Current: mover.Status, Required: models.StatusResting}
		return nil, err
	}

	var currentWeight int
	if err = tx.GetContext(ctx, &currentWeight, currentWeightQuery, moverID, models.ActionLoaded); err != nil {
		err = fmt.Errorf("current weight: %w", err)
		return nil, err
	}
	if currentWeight+totalWeight > mover.MaxWeight {
		err = &CapacityError{Current: currentWeight, Requested: totalWeight, Max: mover.MaxWeight}
		return nil, err
	}

	now := time.Now().UTC()
	for i := range records {
		records[i].ID = uuid.NewString()
		records[i].MoverID = moverID
		records[i].Action = models.ActionLoaded
		records[i].CreatedAt = now
		if _, err = tx.NamedExecContext(ctx,
			`INSERT INTO load_records (id, mover_id, item_id, quantity, action, created_at)
             VALUES (:id, :mover_id, :item_id, :quantity, :action, :created_at)`,
			&records[i]); err != nil {
			err = fmt.Errorf("insert load record: %w", err)
			return nil, err
		}
		if err = appendLog(ctx, tx, records[i].ID, models.LogLoaded, now); err != nil {
			return nil, err
		}
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE movers SET status = $2, updated_at = $3 WHERE id = $1`,
		moverID, models.StatusLoading, now); err != nil {
		err = fmt.Errorf("transition mover to loading: %w", err)
		return nil, err
	}

	if err = tx.Commit(); err != nil {
		err = fmt.Errorf("commit load: %w", err)
		return nil, err
	}
	return records, nil
}

// StartMission transitions the owning mover Loading -> On-Mission using a
// compare-and-swap on the status column, and appends the On-Mission log
// entry in the same transaction.
func (r *LoadRepository) StartMission(ctx context.Context, moverID, recordID string) error {
	return r.transition(ctx, moverID, recordID, models.StatusLoading, models.StatusOnMission, models.LogOnMission, false)
}

// EndMission transitions the owning mover On-Mission -> Resting, flips every
// still-Loaded record of the mover to Unloaded, and appends one Unloaded log
// entry per flipped record, all in one transaction.
func (r *LoadRepository) EndMission(ctx context.Context, moverID, recordID string) error {
	return r.transition(ctx, moverID, recordID, models.StatusOnMission, models.StatusResting, models.LogUnloaded, true)
}

func (r *LoadRepository) transition(ctx context.Context, moverID, recordID string, from, to models.MoverStatus, logAction models.LogAction, unload bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transition tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	now := time.Now().UTC()
	res, err := tx.ExecContext(ctx,
		`UPDATE movers SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`,
		moverID, from, to, now)
	if err != nil {
		err = fmt.Errorf("transition mover: %w", err)
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		err = fmt.Errorf("transition mover: %w", err)
		return err
	}
	if affected == 0 {
		var current models.MoverStatus
		if err = tx.GetContext(ctx, &current, `SELECT status FROM movers WHERE id = $1`, moverID); err != nil {
			return err
		}
		err = &StateConflictError{Current: current, Required: from}
		return err
	}

	if unload {
		var unloaded []string
		if err = tx.SelectContext(ctx, &unloaded,
			`UPDATE load_records SET action = $2 WHERE mover_id = $1 AND action = $3 RETURNING id`,
			moverID, models.ActionUnloaded, models.ActionLoaded); err != nil {
			err = fmt.Errorf("unload records: %w", err)
			return err
		}
		for _, id := range unloaded {
			if err = appendLog(ctx, tx, id, logAction, now); err != nil {
				return err
			}
		}
	} else {
		if err = appendLog(ctx, tx, recordID, logAction, now); err != nil {
			return err
		}
	}

	if err = tx.Commit(); err != nil {
		err = fmt.Errorf("commit transition: %w", err)
		return err
	}
	return nil
}

func appendLog(ctx context.Context, tx *sqlx.Tx, recordID string, action models.LogAction, ts time.Time) error {
	entry := models.LogEntry{
		ID:           uuid.NewString(),
		LoadRecordID: recordID,
		Action:       action,
		Timestamp:    ts,
	}
	if _, err := tx.NamedExecContext(ctx,
		`INSERT INTO logs (id, load_record_id, action, timestamp)
         VALUES (:id, :load_record_id, :action, :timestamp)`,
		&entry); err != nil {
		return fmt.Errorf("append log: %w", err)
	}
	return nil
}

type missionCountRow struct {
	MoverID      string             `db:"mover_id"`
	MissionCount int                `db:"mission_count"`
	MaxWeight    int                `db:"max_weight"`
	Status       models.MoverStatus `db:"status"`
	CreatedAt    time.Time          `db:"created_at"`
	UpdatedAt    time.Time          `db:"updated_at"`
}

// CompletedMissions aggregates Unloaded records per mover, joined with the
// current mover row, ordered by mission count descending with mover ID
// ascending as the tie-break. Movers without completed missions are absent.
func (r *LoadRepository) CompletedMissions(ctx context.Context) ([]models.MoverMissionCount, error) {
	const query = `SELECT lr.mover_id, COUNT(*) AS mission_count,
            m.max_weight, m.status, m.created_at, m.updated_at
        FROM load_records lr
        JOIN movers m ON m.id = lr.mover_id
        WHERE lr.action = $1
        GROUP BY lr.mover_id, m.max_weight, m.status, m.created_at, m.updated_at
        ORDER BY mission_count DESC, lr.mover_id ASC`

	var rows []missionCountRow
	if err := r.db.SelectContext(ctx, &rows, query, models.ActionUnloaded); err != nil {
		return nil, fmt.Errorf("completed missions: %w", err)
	}

	result := make([]models.MoverMissionCount, 0, len(rows))
	for _, row := range rows {
		result = append(result, models.MoverMissionCount{
			MoverID:      row.MoverID,
			MissionCount: row.MissionCount,
			Mover: models.Mover{
				ID:        row.MoverID,
				MaxWeight: row.MaxWeight,
				Status:    row.Status,
				CreatedAt: row.CreatedAt,
				UpdatedAt: row.UpdatedAt,
			},
		})
	}
	return result, nil
}
