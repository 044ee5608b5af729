package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	domain "github.com/evalix/ai-readiness/internal/domain/benchmark"
)

type BenchmarkRepository struct{ db *sql.DB }

func NewBenchmarkRepository(db *sql.DB) *BenchmarkRepository { return &BenchmarkRepository{db: db} }

// Get loads the singleton record; defaults apply until the admin saved one.
func (r *BenchmarkRepository) Get(ctx context.Context) (*domain.Config, error) {
	const q = `
SELECT cfg_key, q0, q1, q2, q3, q4, q5, q6, q7, q8, updated_at
FROM benchmark_config
WHERE cfg_key=$1
LIMIT 1;`
	var c domain.Config
	err := r.db.QueryRowContext(ctx, q, domain.DefaultKey).Scan(
		&c.Key,
		&c.Values[0], &c.Values[1], &c.Values[2],
		&c.Values[3], &c.Values[4], &c.Values[5],
		&c.Values[6], &c.Values[7], &c.Values[8],
		&c.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Save upserts the singleton record
func (r *BenchmarkRepository) Save(ctx context.Context, c *domain.Config) error {
	const q = `
INSERT INTO benchmark_config (cfg_key, q0, q1, q2, q3, q4, q5, q6, q7, q8, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
ON CONFLICT (cfg_key) DO UPDATE SET
 q0 = EXCLUDED.q0, q1 = EXCLUDED.q1, q2 = EXCLUDED.q2,
 q3 = EXCLUDED.q3, q4 = EXCLUDED.q4, q5 = EXCLUDED.q5,
 q6 = EXCLUDED.q6, q7 = EXCLUDED.q7, q8 = EXCLUDED.q8,
 updated_at = EXCLUDED.updated_at;`
	updated := c.UpdatedAt
	if updated.IsZero() {
		updated = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q,
		domain.DefaultKey,
		c.Values[0], c.Values[1], c.Values[2],
		c.Values[3], c.Values[4], c.Values[5],
		c.Values[6], c.Values[7], c.Values[8],
		updated,
	)
	return err
}
