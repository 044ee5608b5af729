package assessment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appeval "github.com/evalix/ai-readiness/internal/application/evaluation"
	domain "github.com/evalix/ai-readiness/internal/domain/assessment"
	"github.com/evalix/ai-readiness/internal/domain/benchmark"
	"github.com/evalix/ai-readiness/internal/domain/notification"
)

type memRepo struct {
	recs  map[domain.SessionID]*domain.Response
	saves int
}

func newMemRepo() *memRepo {
	return &memRepo{recs: map[domain.SessionID]*domain.Response{}}
}

func (m *memRepo) Get(ctx context.Context, id domain.SessionID) (*domain.Response, error) {
	r, ok := m.recs[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memRepo) Save(ctx context.Context, r *domain.Response) error {
	cp := *r
	m.recs[r.SessionID] = &cp
	m.saves++
	return nil
}

func (m *memRepo) Delete(ctx context.Context, id domain.SessionID) (bool, error) {
	_, ok := m.recs[id]
	delete(m.recs, id)
	return ok, nil
}

func (m *memRepo) ListAll(ctx context.Context) ([]*domain.Response, error) {
	out := make([]*domain.Response, 0, len(m.recs))
	for _, r := range m.recs {
		cp := *r
		out = append(out, &cp)
	}
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

type fakeMailer struct {
	err  error
	sent []notification.Report
}

func (f *fakeMailer) SendReport(ctx context.Context, rep notification.Report) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, rep)
	return nil
}

type memMailLog struct {
	entries []*notification.Entry
}

func (m *memMailLog) Save(ctx context.Context, e *notification.Entry) error {
	m.entries = append(m.entries, e)
	return nil
}

func (m *memMailLog) ListBySession(ctx context.Context, sessionID string, limit int) ([]*notification.Entry, error) {
	var out []*notification.Entry
	for _, e := range m.entries {
		if e.SessionID == sessionID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

func newTestService(repo *memRepo) *Service {
	return &Service{
		Repo:       repo,
		Benchmarks: &memBenchmarks{},
		Evaluator:  &appeval.Service{},
		MailLog:    &memMailLog{},
		Clock:      fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		ResultURL:  "https://example.com/results",
	}
}

func TestUpsertAnswerEstablishesSession(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	id, err := svc.UpsertAnswer(ctx, "", 0, 3)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	rec, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, rec.Answer(0))
	assert.Equal(t, 4, *rec.Answer(0), "slot stores the option score, not the option id")
	assert.NotEmpty(t, rec.Rev)

	// second answer reuses the session and keeps the first slot
	id2, err := svc.UpsertAnswer(ctx, string(id), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, id, id2)

	rec, err = repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 4, *rec.Answer(0))
	assert.Equal(t, 1, *rec.Answer(1))
}

func TestUpsertAnswerRejectsUnknownOption(t *testing.T) {
	svc := newTestService(newMemRepo())
	_, err := svc.UpsertAnswer(context.Background(), "", 0, 99)
	require.Error(t, err)
	_, err = svc.UpsertAnswer(context.Background(), "", 42, 0)
	require.Error(t, err)
}

func TestUpsertAnswerDemographicsStoresOptionID(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	id, err := svc.UpsertAnswer(ctx, "", 9, 3)
	require.NoError(t, err)

	rec, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, rec.Answer(9))
	assert.Equal(t, 3, *rec.Answer(9))
}

func TestSubmitComputesAverages(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	var batch []AnswerSubmission
	for q := 0; q < 9; q++ {
		batch = append(batch, AnswerSubmission{QuestionID: q, AnswerID: 2}) // score 3
	}
	// the application scenario: scores 4, 3, 5 -> average 4.0
	batch[3].AnswerID = 3
	batch[4].AnswerID = 2
	batch[5].AnswerID = 4

	id, redirect, err := svc.Submit(ctx, "", batch)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/results", redirect)

	rec, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, rec.StrategyAverage)
	require.NotNil(t, rec.ApplicationAverage)
	require.NotNil(t, rec.CultureAverage)
	assert.InDelta(t, 3.0, *rec.StrategyAverage, 1e-9)
	assert.InDelta(t, 4.0, *rec.ApplicationAverage, 1e-9)
	assert.InDelta(t, 3.0, *rec.CultureAverage, 1e-9)
}

func TestSubmitPartialLeavesOtherCategoriesUnscored(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)

	id, _, err := svc.Submit(context.Background(), "", []AnswerSubmission{
		{QuestionID: 0, AnswerID: 4},
	})
	require.NoError(t, err)

	rec, err := repo.Get(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, rec.StrategyAverage)
	assert.InDelta(t, 5.0, *rec.StrategyAverage, 1e-9)
	assert.Nil(t, rec.ApplicationAverage)
	assert.Nil(t, rec.CultureAverage)
}

func TestResultsRequiresSession(t *testing.T) {
	svc := newTestService(newMemRepo())
	_, err := svc.Results(context.Background(), "")
	assert.ErrorIs(t, err, ErrNoSession)

	_, err = svc.Results(context.Background(), "unknown")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResultsPayload(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	var batch []AnswerSubmission
	for q := 0; q < 9; q++ {
		batch = append(batch, AnswerSubmission{QuestionID: q, AnswerID: 3}) // score 4
	}
	batch[8].AnswerID = 4 // ambition: top option
	id, _, err := svc.Submit(ctx, "", batch)
	require.NoError(t, err)

	res, err := svc.Results(ctx, string(id))
	require.NoError(t, err)

	require.Len(t, res.UserChartData, 9)
	for i := 0; i < 8; i++ {
		require.NotNil(t, res.UserChartData[i])
		assert.Equal(t, 4, *res.UserChartData[i])
	}
	assert.Equal(t, 5, *res.UserChartData[8])

	require.Len(t, res.BenchmarkChartData, 9)
	for _, v := range res.BenchmarkChartData {
		assert.Equal(t, float64(benchmark.DefaultValue), v)
	}

	require.Len(t, res.CategoryResults, 3)
	for _, cr := range res.CategoryResults {
		assert.True(t, cr.Scored)
		assert.NotEmpty(t, cr.Evaluation)
	}
	assert.Equal(t, "Become an AI-first organisation", res.Ambition)
}

func TestResultsRecomputesMissingAverages(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	// record written by an older flow: answers present, averages never stored
	rec := &domain.Response{SessionID: "legacy"}
	rec.SetAnswer(0, 2)
	rec.SetAnswer(1, 4)
	require.NoError(t, repo.Save(ctx, rec))

	res, err := svc.Results(ctx, "legacy")
	require.NoError(t, err)
	require.True(t, res.CategoryResults[0].Scored)
	assert.InDelta(t, 3.0, res.CategoryResults[0].Average, 1e-9)
	assert.False(t, res.CategoryResults[1].Scored)
	assert.Empty(t, res.CategoryResults[1].Evaluation)

	// the recomputed average was written back
	stored, err := repo.Get(ctx, "legacy")
	require.NoError(t, err)
	require.NotNil(t, stored.StrategyAverage)
	assert.InDelta(t, 3.0, *stored.StrategyAverage, 1e-9)
}

func TestSaveContactSendsReport(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	mailer := &fakeMailer{}
	mailLog := &memMailLog{}
	svc.Mailer = mailer
	svc.MailLog = mailLog
	svc.SalesList = []string{"sales@example.com"}
	ctx := context.Background()

	id, _, err := svc.Submit(ctx, "", []AnswerSubmission{
		{QuestionID: 0, AnswerID: 2},
		{QuestionID: 8, AnswerID: 3},
	})
	require.NoError(t, err)

	err = svc.SaveContact(ctx, string(id), "Ada", "ACME", "ada@example.com", true)
	require.NoError(t, err)

	rec, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", rec.Name)
	assert.Equal(t, "ada@example.com", rec.Email)
	assert.True(t, rec.OptIn)

	require.Len(t, mailer.sent, 1)
	rep := mailer.sent[0]
	assert.Equal(t, "ada@example.com", rep.To)
	assert.Equal(t, []string{"sales@example.com"}, rep.CopyTo)
	assert.NotEmpty(t, rep.Categories)
	assert.Equal(t, "Scale AI in core processes", rep.Ambition)

	entries, err := mailLog.ListBySession(ctx, string(id), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, notification.StatusSent, entries[0].Status)
}

func TestSaveContactMailFailureIsNotFatal(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	mailLog := &memMailLog{}
	svc.Mailer = &fakeMailer{err: errors.New("smtp refused")}
	svc.MailLog = mailLog
	ctx := context.Background()

	id, _, err := svc.Submit(ctx, "", []AnswerSubmission{{QuestionID: 0, AnswerID: 2}})
	require.NoError(t, err)

	err = svc.SaveContact(ctx, string(id), "Ada", "", "ada@example.com", false)
	require.NoError(t, err, "contact save survives a mail failure")

	rec, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", rec.Name)

	entries, err := mailLog.ListBySession(ctx, string(id), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, notification.StatusFailed, entries[0].Status)
	assert.Contains(t, entries[0].Detail, "smtp refused")
}

func TestSaveContactRequiresExistingSession(t *testing.T) {
	svc := newTestService(newMemRepo())
	err := svc.SaveContact(context.Background(), "", "Ada", "", "ada@example.com", false)
	assert.ErrorIs(t, err, ErrNoSession)

	err = svc.SaveContact(context.Background(), "missing", "Ada", "", "ada@example.com", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReplaceChecksRevToken(t *testing.T) {
	repo := newMemRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	id, err := svc.UpsertAnswer(ctx, "", 0, 0)
	require.NoError(t, err)

	rec, err := repo.Get(ctx, id)
	require.NoError(t, err)

	// a concurrent writer bumps the rev
	_, err = svc.UpsertAnswer(ctx, string(id), 1, 1)
	require.NoError(t, err)

	err = svc.Replace(ctx, rec)
	assert.ErrorIs(t, err, domain.ErrRevMismatch)

	fresh, err := repo.Get(ctx, id)
	require.NoError(t, err)
	readRev := fresh.Rev
	fresh.Sector = "IT & Software"
	require.NoError(t, svc.Replace(ctx, fresh))

	stored, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "IT & Software", stored.Sector)
	assert.NotEqual(t, readRev, stored.Rev, "every save mints a new rev")
}
