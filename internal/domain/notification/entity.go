package notification

import "time"

// Status of a report-mail attempt
type Status string

const (
	StatusSent   Status = "sent"
	StatusFailed Status = "failed"
)

// Entry is a persisted record of one report-mail attempt. Sending is
// best-effort, so failures only end up here and in the log output.
type Entry struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Recipient string    `json:"recipient"`
	Status    Status    `json:"status"`
	Detail    string    `json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Report is the rendered scoring summary handed to the Sender.
type Report struct {
	To      string
	Name    string
	Company string

	Categories []CategoryScore
	Ambition   string

	// CopyTo is the internal distribution list, may be empty.
	CopyTo []string
}

// CategoryScore is one category line of the report.
type CategoryScore struct {
	Name       string
	Average    float64
	Evaluation string
}
