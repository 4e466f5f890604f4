package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fleetops/fleet-logistics-api/internal/models"
)

// MoverRepository manages persistence for mover records.
type MoverRepository struct {
	db *sqlx.DB
}

// NewMoverRepository constructs a MoverRepository.
func NewMoverRepository(db *sqlx.DB) *MoverRepository {
	return &MoverRepository{db: db}
}

// Create inserts a new mover record.
func (r *MoverRepository) Create(ctx context.Context, mover *models.Mover) error {
	if mover.ID == "" {
		mover.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if mover.CreatedAt.IsZero() {
		mover.CreatedAt = now
	}
	mover.UpdatedAt = now
	const query = `INSERT INTO movers (id, max_weight, status, created_at, updated_at)
        VALUES (:id, :max_weight, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, mover); err != nil {
		return fmt.Errorf("create mover: %w", err)
	}
	return nil
}

// List returns every registered mover.
func (r *MoverRepository) List(ctx context.Context) ([]models.Mover, error) {
	const query = `SELECT id, max_weight, status, created_at, updated_at FROM movers ORDER BY created_at`
	var movers []models.Mover
	if err := r.db.SelectContext(ctx, &movers, query); err != nil {
		return nil, fmt.Errorf("list movers: %w", err)
	}
	return movers, nil
}

// FindByID fetches a mover by ID. Returns sql.ErrNoRows when absent.
func (r *MoverRepository) FindByID(ctx context.Context, id string) (*models.Mover, error) {
	const query = `SELECT id, max_weight, status, created_at, updated_at FROM movers WHERE id = $1`
	var mover models.Mover
	if err := r.db.GetContext(ctx, &mover, query, id); err != nil {
		return nil, err
	}
	return &mover, nil
}
