package admin

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/evalix/ai-readiness/internal/domain/assessment"
	"github.com/evalix/ai-readiness/internal/domain/benchmark"
	"github.com/evalix/ai-readiness/internal/domain/notification"
)

type memRepo struct {
	recs []*domain.Response
}

func (m *memRepo) Get(ctx context.Context, id domain.SessionID) (*domain.Response, error) {
	for _, r := range m.recs {
		if r.SessionID == id {
			return r, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memRepo) Save(ctx context.Context, r *domain.Response) error {
	m.recs = append(m.recs, r)
	return nil
}

func (m *memRepo) Delete(ctx context.Context, id domain.SessionID) (bool, error) {
	for i, r := range m.recs {
		if r.SessionID == id {
			m.recs = append(m.recs[:i], m.recs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memRepo) ListAll(ctx context.Context) ([]*domain.Response, error) {
	out := make([]*domain.Response, len(m.recs))
	copy(out, m.recs)
	return out, nil
}

type memBenchmarks struct {
	cfg *benchmark.Config
}

func (m *memBenchmarks) Get(ctx context.Context) (*benchmark.Config, error) {
	if m.cfg == nil {
		return benchmark.Default(), nil
	}
	return m.cfg, nil
}

func (m *memBenchmarks) Save(ctx context.Context, c *benchmark.Config) error {
	m.cfg = c
	return nil
}

type memArchive struct {
	keys []string
	data [][]byte
}

func (m *memArchive) Upload(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	m.keys = append(m.keys, key)
	m.data = append(m.data, data)
	return "https://store.example.com/" + key, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func record(session, name string, answers map[int]int) *domain.Response {
	r := &domain.Response{SessionID: domain.SessionID(session), Name: name}
	for q, v := range answers {
		r.SetAnswer(q, v)
	}
	return r
}

func newTestService(recs ...*domain.Response) (*Service, *memRepo) {
	repo := &memRepo{recs: recs}
	svc := &Service{
		Repo:       repo,
		Benchmarks: &memBenchmarks{},
		Clock:      fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
	}
	return svc, repo
}

func TestListFilters(t *testing.T) {
	svc, _ := newTestService(
		record("a", "Ada", map[int]int{0: 4, 1: 3}),
		record("b", "", map[int]int{0: 2}),
		record("c", "Cleo", map[int]int{5: 5}),
	)
	ctx := context.Background()

	t.Run("no filter returns everything", func(t *testing.T) {
		got, err := svc.List(ctx, ListOptions{})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("answered question", func(t *testing.T) {
		q := 0
		got, err := svc.List(ctx, ListOptions{AnsweredQuestion: &q})
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, r := range got {
			assert.NotNil(t, r.Answer(0))
		}
	})

	t.Run("with contact", func(t *testing.T) {
		got, err := svc.List(ctx, ListOptions{WithContact: true})
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, r := range got {
			assert.True(t, r.HasContact())
		}
	})

	t.Run("both filters combine", func(t *testing.T) {
		q := 5
		got, err := svc.List(ctx, ListOptions{AnsweredQuestion: &q, WithContact: true})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, domain.SessionID("c"), got[0].SessionID)
	})
}

func TestListSorting(t *testing.T) {
	avg := func(v float64) *float64 { return &v }
	a := &domain.Response{SessionID: "a", Name: "zoe", StrategyAverage: avg(2.0)}
	b := &domain.Response{SessionID: "b", Name: "Amir", StrategyAverage: avg(4.5)}
	c := &domain.Response{SessionID: "c"} // no name, no average
	svc, _ := newTestService(a, b, c)
	ctx := context.Background()

	ids := func(recs []*domain.Response) []string {
		var out []string
		for _, r := range recs {
			out = append(out, string(r.SessionID))
		}
		return out
	}

	t.Run("by name ascending, case-insensitive, blanks last", func(t *testing.T) {
		got, err := svc.List(ctx, ListOptions{SortBy: "name"})
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a", "c"}, ids(got))
	})

	t.Run("by name descending keeps blanks last", func(t *testing.T) {
		got, err := svc.List(ctx, ListOptions{SortBy: "name", Desc: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, ids(got))
	})

	t.Run("by average descending keeps missing scores last", func(t *testing.T) {
		got, err := svc.List(ctx, ListOptions{SortBy: "strategy", Desc: true})
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a", "c"}, ids(got))
	})

	t.Run("by created time by default", func(t *testing.T) {
		base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		a.CreatedAt = base.Add(2 * time.Hour)
		b.CreatedAt = base
		c.CreatedAt = base.Add(time.Hour)
		got, err := svc.List(ctx, ListOptions{})
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c", "a"}, ids(got))
	})
}

func TestExportCSV(t *testing.T) {
	tricky := record("s1", `Quote "Q" Comma, Inc.`, map[int]int{0: 4})
	tricky.Company = "Line\nBreak GmbH"
	tricky.Email = "q@example.com"
	tricky.StrategyAverage = func(v float64) *float64 { return &v }(4.0)
	svc, _ := newTestService(tricky)

	data, err := svc.ExportCSV(context.Background(), ListOptions{})
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err, "export must stay parseable despite quotes and newlines")
	require.Len(t, rows, 2)

	header := rows[0]
	assert.Equal(t, "sessionId", header[0])
	assert.Len(t, header, 8+domain.SlotCount+3)

	row := rows[1]
	assert.Equal(t, "s1", row[0])
	assert.Equal(t, `Quote "Q" Comma, Inc.`, row[2])
	assert.Equal(t, "Line\nBreak GmbH", row[3])
	assert.Equal(t, "4", row[8], "question0Answer column")
	assert.Equal(t, "", row[9], "unanswered slots stay blank")
	assert.Equal(t, "4.00", row[len(row)-3], "strategyAverage column")
}

func TestArchiveCSV(t *testing.T) {
	svc, _ := newTestService(record("s1", "Ada", map[int]int{0: 3}))

	_, err := svc.ArchiveCSV(context.Background())
	require.Error(t, err, "no archive store configured")

	store := &memArchive{}
	svc.Archive = store
	url, err := svc.ArchiveCSV(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "https://store.example.com/exports/assessments-20250601-120000.csv", url)
	require.Len(t, store.data, 1)
	assert.Contains(t, string(store.data[0]), "s1")
}

func TestDelete(t *testing.T) {
	svc, repo := newTestService(record("s1", "", nil))
	ctx := context.Background()

	found, err := svc.Delete(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Empty(t, repo.recs)

	found, err = svc.Delete(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBenchmarks(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	t.Run("defaults before first save", func(t *testing.T) {
		cfg, err := svc.GetBenchmarks(ctx)
		require.NoError(t, err)
		for _, v := range cfg.Values {
			assert.Equal(t, float64(benchmark.DefaultValue), v)
		}
	})

	t.Run("save and read back", func(t *testing.T) {
		values := [9]float64{3.1, 3.2, 3.3, 3.4, 3.5, 3.6, 3.7, 3.8, 3.9}
		saved, err := svc.SaveBenchmarks(ctx, values)
		require.NoError(t, err)
		assert.Equal(t, values, saved.Values)

		cfg, err := svc.GetBenchmarks(ctx)
		require.NoError(t, err)
		assert.Equal(t, values, cfg.Values)
	})

	t.Run("out-of-range values rejected", func(t *testing.T) {
		for _, bad := range []float64{0.9, 5.1, -1, 0} {
			values := [9]float64{3, 3, 3, 3, bad, 3, 3, 3, 3}
			_, err := svc.SaveBenchmarks(ctx, values)
			assert.ErrorIs(t, err, ErrInvalidBenchmark, fmt.Sprintf("value %v", bad))
		}
	})
}

func TestNotificationsWithoutLog(t *testing.T) {
	svc, _ := newTestService()
	entries, err := svc.Notifications(context.Background(), "s1", 10)
	require.NoError(t, err)
	assert.Nil(t, entries)
}

var _ notification.Repository = (*nopMailLog)(nil)

type nopMailLog struct{}

func (nopMailLog) Save(ctx context.Context, e *notification.Entry) error { return nil }
func (nopMailLog) ListBySession(ctx context.Context, sessionID string, limit int) ([]*notification.Entry, error) {
	return []*notification.Entry{{SessionID: sessionID, Status: notification.StatusSent}}, nil
}

func TestNotifications(t *testing.T) {
	svc, _ := newTestService()
	svc.MailLog = nopMailLog{}
	entries, err := svc.Notifications(context.Background(), "s1", 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "s1", entries[0].SessionID)
}
