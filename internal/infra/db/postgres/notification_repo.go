package postgres

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/evalix/ai-readiness/internal/domain/notification"
)

type NotificationRepository struct{ db *sql.DB }

func NewNotificationRepository(db *sql.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Save(ctx context.Context, e *domain.Entry) error {
	const q = `
INSERT INTO notification_log (session_id, recipient, status, detail, created_at)
VALUES ($1,$2,$3,$4,$5);`
	created := e.CreatedAt
	if created.IsZero() {
		created = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q, e.SessionID, e.Recipient, string(e.Status), e.Detail, created)
	return err
}

func (r *NotificationRepository) ListBySession(ctx context.Context, sessionID string, limit int) ([]*domain.Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, session_id, recipient, status, detail, created_at
FROM notification_log
WHERE session_id=$1
ORDER BY created_at DESC, id DESC
LIMIT $2;`
	rows, err := r.db.QueryContext(ctx, q, sessionID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Entry
	for rows.Next() {
		var e domain.Entry
		var status string
		var detail sql.NullString
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Recipient, &status, &detail, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Status = domain.Status(status)
		e.Detail = detail.String
		out = append(out, &e)
	}
	return out, rows.Err()
}
