package storage

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	_ "modernc.org/sqlite"

	"syndicator/internal/domain"
	"syndicator/internal/ports"
)

const deliveriesSchema = `
CREATE TABLE IF NOT EXISTS deliveries (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    file_path  TEXT NOT NULL,
    target     TEXT NOT NULL,
    url        TEXT NOT NULL,
    title      TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
)`

// SQLiteRepository persists the delivery audit trail into a local
// sqlite file. It is an audit log only; the front-matter marker stays
// the single source of truth for idempotency.
type SQLiteRepository struct {
	db *sql.DB
}

var _ ports.DeliveryRepository = (*SQLiteRepository)(nil)

// Open creates or opens the database at path and ensures the schema.
func Open(path string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	if _, err := db.Exec(deliveriesSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close releases the underlying database handle.
func (r *SQLiteRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// SaveDelivery appends one successful per-target publication.
func (r *SQLiteRepository) SaveDelivery(ctx context.Context, delivery domain.Delivery) error {
	if r.db == nil {
		return nil
	}

	query, args, err := sq.Insert("deliveries").
		Columns("file_path", "target", "url", "title").
		Values(delivery.FilePath, delivery.Target, delivery.URL, delivery.Title).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert delivery: %w", err)
	}

	return nil
}

// DeliveriesFor returns the recorded publications of a single document,
// oldest first.
func (r *SQLiteRepository) DeliveriesFor(ctx context.Context, filePath string) ([]domain.Delivery, error) {
	if r.db == nil {
		return nil, nil
	}

	query, args, err := sq.Select("file_path", "target", "url", "title").
		From("deliveries").
		Where(sq.Eq{"file_path": filePath}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query deliveries: %w", err)
	}
	defer rows.Close()

	var deliveries []domain.Delivery
	for rows.Next() {
		var d domain.Delivery
		if err := rows.Scan(&d.FilePath, &d.Target, &d.URL, &d.Title); err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		deliveries = append(deliveries, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	return deliveries, nil
}
