package evaluation

import "errors"

// ErrUnavailable indicates the text provider kept failing after retries.
// Never propagates past the evaluation service; it only marks the
// fallback path in logs.
var ErrUnavailable = errors.New("evaluation text provider unavailable")
