package assessment

import "errors"

// ErrNotFound indicates no response record exists for the session.
// Not-found is a normal outcome (assessment not started yet), callers
// must distinguish it from storage failures.
var ErrNotFound = errors.New("assessment not found")

// ErrRevMismatch indicates a replace raced with another write.
var ErrRevMismatch = errors.New("assessment rev mismatch")
