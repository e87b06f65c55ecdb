package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/aoserver/internal/iclog"
)

// ICLogRepository stores accepted IC messages in the ic_log table.
// It implements iclog.Sink.
type ICLogRepository struct {
	db *pgxpool.Pool
}

// NewICLogRepository creates a new ICLogRepository.
func NewICLogRepository(db *pgxpool.Pool) *ICLogRepository {
	return &ICLogRepository{db: db}
}

// LogIC inserts one event.
func (r *ICLogRepository) LogIC(ctx context.Context, ev iclog.Event) error {
	query := `
		INSERT INTO ic_log (logged_at, character, showname, ooc_name, ipid, area_id, area_name, message)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		ev.Time, ev.Character, ev.ShowName, ev.OOCName, ev.IPID, ev.AreaID, ev.AreaName, ev.Message,
	)
	if err != nil {
		return fmt.Errorf("inserting ic log for area %d: %w", ev.AreaID, err)
	}
	return nil
}

// Recent returns up to limit latest events of an area, newest first.
func (r *ICLogRepository) Recent(ctx context.Context, areaID, limit int) ([]iclog.Event, error) {
	query := `
		SELECT logged_at, character, showname, ooc_name, ipid, area_id, area_name, message
		FROM ic_log
		WHERE area_id = $1
		ORDER BY logged_at DESC, id DESC
		LIMIT $2
	`

	rows, err := r.db.Query(ctx, query, areaID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying ic log for area %d: %w", areaID, err)
	}
	defer rows.Close()

	result := make([]iclog.Event, 0, limit)
	for rows.Next() {
		var ev iclog.Event
		if err := rows.Scan(
			&ev.Time, &ev.Character, &ev.ShowName, &ev.OOCName,
			&ev.IPID, &ev.AreaID, &ev.AreaName, &ev.Message,
		); err != nil {
			return nil, fmt.Errorf("scanning ic log row: %w", err)
		}
		result = append(result, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ic log rows: %w", err)
	}

	return result, nil
}
