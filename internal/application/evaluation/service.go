package evaluation

import (
	"context"
	"fmt"
	"hash/fnv"
	"log"
	"strings"

	"github.com/evalix/ai-readiness/internal/domain/evaluation"
)

// Cache port: TTL memo for generated texts. The key space is small
// (sessions x categories), so no size bound is needed.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string)
}

// Service resolves the evaluation text for a category average: cached
// generated text first, then the generator, then the canned table.
// Evaluate never fails and never returns an empty string.
type Service struct {
	Generator evaluation.Generator // nil -> canned table only
	Memo      Cache                // nil -> no memoization
}

// Evaluate returns the evaluation text for (category, average). The raw
// answers only feed the cache key, so a changed answer set bypasses a
// stale memo entry.
func (s *Service) Evaluate(ctx context.Context, category string, average float64, answers []int) string {
	if s == nil || s.Generator == nil {
		return evaluation.Lookup(category, average)
	}

	key := memoKey(category, average, answers)
	if s.Memo != nil {
		if text, ok := s.Memo.Get(ctx, key); ok && text != "" {
			return text
		}
	}

	text, err := s.Generator.Generate(ctx, category, average)
	if err != nil || strings.TrimSpace(text) == "" {
		if err != nil {
			log.Printf("evaluation generate failed (%s, %.2f), using canned text: %v", category, average, err)
		}
		return evaluation.Lookup(category, average)
	}
	if s.Memo != nil {
		s.Memo.Set(ctx, key, text)
	}
	return text
}

func memoKey(category string, average float64, answers []int) string {
	h := fnv.New64a()
	for _, a := range answers {
		fmt.Fprintf(h, "%d,", a)
	}
	return fmt.Sprintf("eval:%s:%.2f:%x", category, average, h.Sum64())
}
