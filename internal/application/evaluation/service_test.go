package evaluation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evalix/ai-readiness/internal/domain/evaluation"
	"github.com/evalix/ai-readiness/internal/domain/questions"
)

type fakeGenerator struct {
	text  string
	err   error
	calls int
}

func (f *fakeGenerator) Generate(ctx context.Context, category string, average float64) (string, error) {
	f.calls++
	return f.text, f.err
}

type fakeCache struct {
	store map[string]string
}

func newFakeCache() *fakeCache { return &fakeCache{store: map[string]string{}} }

func (c *fakeCache) Get(ctx context.Context, key string) (string, bool) {
	v, ok := c.store[key]
	return v, ok
}

func (c *fakeCache) Set(ctx context.Context, key, value string) { c.store[key] = value }

func TestEvaluateGenerated(t *testing.T) {
	gen := &fakeGenerator{text: "custom advice"}
	svc := &Service{Generator: gen, Memo: newFakeCache()}

	got := svc.Evaluate(context.Background(), questions.CategoryStrategy, 3.2, []int{3, 3, 4})
	assert.Equal(t, "custom advice", got)
	assert.Equal(t, 1, gen.calls)
}

func TestEvaluateMemoHit(t *testing.T) {
	gen := &fakeGenerator{text: "custom advice"}
	svc := &Service{Generator: gen, Memo: newFakeCache()}
	ctx := context.Background()

	first := svc.Evaluate(ctx, questions.CategoryStrategy, 3.2, []int{3, 3, 4})
	second := svc.Evaluate(ctx, questions.CategoryStrategy, 3.2, []int{3, 3, 4})
	assert.Equal(t, first, second)
	assert.Equal(t, 1, gen.calls, "second call served from the memo")

	// a different answer set must not reuse the memo entry
	svc.Evaluate(ctx, questions.CategoryStrategy, 3.2, []int{4, 3, 3})
	assert.Equal(t, 2, gen.calls)
}

func TestEvaluateFallsBackOnError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream down")}
	svc := &Service{Generator: gen, Memo: newFakeCache()}

	got := svc.Evaluate(context.Background(), questions.CategoryCulture, 2.0, []int{2, 2, 2})
	assert.Equal(t, evaluation.Lookup(questions.CategoryCulture, 2.0), got)
	assert.NotEmpty(t, got)
	assert.Empty(t, svc.Memo.(*fakeCache).store, "failures are not memoized")
}

func TestEvaluateFallsBackOnEmptyText(t *testing.T) {
	gen := &fakeGenerator{text: "   "}
	svc := &Service{Generator: gen}

	got := svc.Evaluate(context.Background(), questions.CategoryApplication, 4.4, []int{5, 4, 4})
	assert.Equal(t, evaluation.Lookup(questions.CategoryApplication, 4.4), got)
}

func TestEvaluateWithoutGenerator(t *testing.T) {
	svc := &Service{}
	got := svc.Evaluate(context.Background(), questions.CategoryStrategy, 1.0, nil)
	require.Equal(t, evaluation.Lookup(questions.CategoryStrategy, 1.0), got)

	var nilSvc *Service
	assert.NotEmpty(t, nilSvc.Evaluate(context.Background(), questions.CategoryStrategy, 1.0, nil))
}
