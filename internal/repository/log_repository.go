package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/fleetops/fleet-logistics-api/internal/models"
)

// LogRepository reads the append-only audit trail. Writes happen inside the
// lifecycle transactions owned by LoadRepository.
type LogRepository struct {
	db *sqlx.DB
}

// NewLogRepository constructs a LogRepository.
func NewLogRepository(db *sqlx.DB) *LogRepository {
	return &LogRepository{db: db}
}

// List returns audit entries matching the filter, newest first, plus the
// total match count.
func (r *LogRepository) List(ctx context.Context, filter models.LogFilter) ([]models.LogEntry, int, error) {
	conditions := []string{"1=1"}
	args := []interface{}{}

	if filter.Action != "" {
		conditions = append(conditions, fmt.Sprintf("action = $%d", len(args)+1))
		args = append(args, filter.Action)
	}
	if filter.LoadRecordID != "" {
		conditions = append(conditions, fmt.Sprintf("load_record_id = $%d", len(args)+1))
		args = append(args, filter.LoadRecordID)
	}

	where := strings.Join(conditions, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT id, load_record_id, action, timestamp
        FROM logs WHERE %s ORDER BY timestamp DESC, id LIMIT %d OFFSET %d`, where, size, offset)

	var entries []models.LogEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list logs: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM logs WHERE %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count logs: %w", err)
	}
	return entries, total, nil
}
