package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/fleetops/fleet-logistics-api/internal/models"
)

// ItemRepository manages persistence for cargo catalog items.
type ItemRepository struct {
	db *sqlx.DB
}

// NewItemRepository constructs an ItemRepository.
func NewItemRepository(db *sqlx.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create inserts a new item record.
func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO items (id, name, weight, created_at)
        VALUES (:id, :name, :weight, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// List returns every catalog item. Each call is a fresh snapshot.
func (r *ItemRepository) List(ctx context.Context) ([]models.Item, error) {
	const query = `SELECT id, name, weight, created_at FROM items ORDER BY created_at`
	var items []models.Item
	if err := r.db.SelectContext(ctx, &items, query); err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// FindByID fetches an item by ID. Returns sql.ErrNoRows when absent.
func (r *ItemRepository) FindByID(ctx context.Context, id string) (*models.Item, error) {
	const query = `SELECT id, name, weight, created_at FROM items WHERE id = $1`
	var item models.Item
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		return nil, err
	}
	return &item, nil
}
