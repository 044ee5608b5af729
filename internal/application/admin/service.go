package admin

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/evalix/ai-readiness/internal/application"
	domain "github.com/evalix/ai-readiness/internal/domain/assessment"
	"github.com/evalix/ai-readiness/internal/domain/benchmark"
	"github.com/evalix/ai-readiness/internal/domain/notification"
)

// ArchiveStore port: stores a finished CSV export and returns its URL.
type ArchiveStore interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

// Service implements the admin use-cases over the response store.
type Service struct {
	Repo       domain.Repository
	Benchmarks benchmark.Repository
	MailLog    notification.Repository
	Archive    ArchiveStore // nil disables archived exports
	Clock      application.Clock
}

// ListOptions are the server-side filter/sort knobs of the listing.
type ListOptions struct {
	// AnsweredQuestion keeps only records where this question has an answer.
	AnsweredQuestion *int
	// WithContact keeps only records with a non-blank contact name.
	WithContact bool
	// SortBy: name | company | email | createdAt | updatedAt | strategy | application | culture
	SortBy string
	Desc   bool
}

// List returns the filtered, sorted assessment records.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]*domain.Response, error) {
	all, err := s.Repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing assessments: %w", err)
	}

	out := all[:0]
	for _, rec := range all {
		if opts.AnsweredQuestion != nil && rec.Answer(*opts.AnsweredQuestion) == nil {
			continue
		}
		if opts.WithContact && !rec.HasContact() {
			continue
		}
		out = append(out, rec)
	}

	sortRecords(out, opts.SortBy, opts.Desc)
	return out, nil
}

// sortKey normalizes one record field for comparison. Blank strings and nil
// numbers sort to the end regardless of direction.
type sortKey struct {
	blank bool
	str   string
	num   float64
}

func keyFor(rec *domain.Response, field string) sortKey {
	str := func(s string) sortKey {
		return sortKey{blank: strings.TrimSpace(s) == "", str: strings.ToLower(s)}
	}
	num := func(v *float64) sortKey {
		if v == nil {
			return sortKey{blank: true}
		}
		return sortKey{num: *v}
	}
	switch field {
	case "name":
		return str(rec.Name)
	case "company":
		return str(rec.Company)
	case "email":
		return str(rec.Email)
	case "updatedAt":
		return sortKey{num: float64(rec.UpdatedAt.UnixNano())}
	case "strategy":
		return num(rec.StrategyAverage)
	case "application":
		return num(rec.ApplicationAverage)
	case "culture":
		return num(rec.CultureAverage)
	default:
		return sortKey{num: float64(rec.CreatedAt.UnixNano())}
	}
}

// sortRecords sorts in place: strings case-insensitively, numbers and times
// numerically, records without a value pushed to the end either direction.
func sortRecords(recs []*domain.Response, field string, desc bool) {
	sort.SliceStable(recs, func(i, j int) bool {
		a, b := keyFor(recs[i], field), keyFor(recs[j], field)
		if a.blank != b.blank {
			return b.blank
		}
		if a.blank {
			return false
		}
		if desc {
			return a.str > b.str || (a.str == b.str && a.num > b.num)
		}
		return a.str < b.str || (a.str == b.str && a.num < b.num)
	})
}

// csvHeader matches the admin dashboard column order.
func csvHeader() []string {
	h := []string{"sessionId", "createdAt", "name", "company", "email", "sector", "companySize", "optIn"}
	for i := 0; i < domain.SlotCount; i++ {
		h = append(h, fmt.Sprintf("question%dAnswer", i))
	}
	return append(h, "strategyAverage", "applicationAverage", "cultureAverage")
}

// ExportCSV serializes the (filtered, sorted) records. encoding/csv applies
// the standard quoting for commas, quotes and newlines.
func (s *Service) ExportCSV(ctx context.Context, opts ListOptions) ([]byte, error) {
	recs, err := s.List(ctx, opts)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader()); err != nil {
		return nil, err
	}
	for _, rec := range recs {
		row := []string{
			string(rec.SessionID),
			rec.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
			rec.Name, rec.Company, rec.Email, rec.Sector, rec.CompanySize,
			strconv.FormatBool(rec.OptIn),
		}
		for i := 0; i < domain.SlotCount; i++ {
			row = append(row, intOrBlank(rec.Answer(i)))
		}
		row = append(row,
			floatOrBlank(rec.StrategyAverage),
			floatOrBlank(rec.ApplicationAverage),
			floatOrBlank(rec.CultureAverage),
		)
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ArchiveCSV writes a full export to the object store and returns its URL.
func (s *Service) ArchiveCSV(ctx context.Context) (string, error) {
	if s.Archive == nil {
		return "", fmt.Errorf("export archive storage not configured")
	}
	data, err := s.ExportCSV(ctx, ListOptions{})
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("exports/assessments-%s.csv", s.Clock.Now().UTC().Format("20060102-150405"))
	return s.Archive.Upload(ctx, key, data, "text/csv")
}

// Delete removes a record; found=false when it never existed.
func (s *Service) Delete(ctx context.Context, sessionID string) (bool, error) {
	return s.Repo.Delete(ctx, domain.SessionID(sessionID))
}

// GetBenchmarks returns the benchmark record (defaults when never saved).
func (s *Service) GetBenchmarks(ctx context.Context) (*benchmark.Config, error) {
	return s.Benchmarks.Get(ctx)
}

// ErrInvalidBenchmark marks a rejected benchmark value (client error, not
// a storage failure).
var ErrInvalidBenchmark = errors.New("invalid benchmark value")

// SaveBenchmarks validates the per-question values and stores the record.
func (s *Service) SaveBenchmarks(ctx context.Context, values [9]float64) (*benchmark.Config, error) {
	for i, v := range values {
		if v < 1 || v > 5 {
			return nil, fmt.Errorf("%w: question %d out of range (1-5): %v", ErrInvalidBenchmark, i, v)
		}
	}
	cfg := &benchmark.Config{Key: benchmark.DefaultKey, Values: values, UpdatedAt: s.Clock.Now()}
	if err := s.Benchmarks.Save(ctx, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Notifications lists the report-mail attempts for one session.
func (s *Service) Notifications(ctx context.Context, sessionID string, limit int) ([]*notification.Entry, error) {
	if s.MailLog == nil {
		return nil, nil
	}
	return s.MailLog.ListBySession(ctx, sessionID, limit)
}

func intOrBlank(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func floatOrBlank(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
