package evaluation

import "context"

// Generator port: produces a natural-language evaluation for a category
// score. Implementations may call an external text API; callers must treat
// any error as "use the canned table instead".
type Generator interface {
	Generate(ctx context.Context, category string, average float64) (string, error)
}
