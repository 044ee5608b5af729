package assessment

import "context"

// Repository port (persistence for responses)
type Repository interface {
	// Get returns ErrNotFound when no record exists for the session.
	Get(ctx context.Context, id SessionID) (*Response, error)
	// Save upserts the full record (last write wins).
	Save(ctx context.Context, r *Response) error
	// Delete reports found=false for a missing record; that is not an error.
	Delete(ctx context.Context, id SessionID) (bool, error)
	// ListAll full scan, admin view only.
	ListAll(ctx context.Context) ([]*Response, error)
}
