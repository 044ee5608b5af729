package notification

import "context"

// Sender port for the transactional-email provider
type Sender interface {
	SendReport(ctx context.Context, rep Report) error
}

// Repository persists mail attempts for admin inspection
type Repository interface {
	Save(ctx context.Context, e *Entry) error
	ListBySession(ctx context.Context, sessionID string, limit int) ([]*Entry, error)
}
