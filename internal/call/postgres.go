package call

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository handles all call catalog database operations.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgresRepository with the given
// connection pool.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Insert creates a new call row and returns the stored record.
func (r *PostgresRepository) Insert(ctx context.Context, objectKey, originalFilename string) (*Call, error) {
	c := &Call{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO calls (object_key, original_filename, status)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, object_key, original_filename, status,
		           duration_sec, transcript, sentiment_score, summary`,
		objectKey, originalFilename, StatusUploaded,
	).Scan(&c.ID, &c.CreatedAt, &c.ObjectKey, &c.OriginalFilename, &c.Status,
		&c.DurationSec, &c.Transcript, &c.SentimentScore, &c.Summary)
	if err != nil {
		return nil, fmt.Errorf("%w: insert call: %v", ErrWrite, err)
	}
	return c, nil
}

// List fetches all calls, most recent first.
func (r *PostgresRepository) List(ctx context.Context) ([]Call, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, created_at, object_key, original_filename, status,
		        duration_sec, transcript, sentiment_score, summary
		 FROM calls
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list calls: %w", err)
	}
	defer rows.Close()

	calls := make([]Call, 0)
	for rows.Next() {
		var c Call
		if err := rows.Scan(&c.ID, &c.CreatedAt, &c.ObjectKey, &c.OriginalFilename, &c.Status,
			&c.DurationSec, &c.Transcript, &c.SentimentScore, &c.Summary); err != nil {
			return nil, fmt.Errorf("scan call: %w", err)
		}
		calls = append(calls, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate calls: %w", err)
	}
	return calls, nil
}
