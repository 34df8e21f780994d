package application

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"
)

// categoryNames adapts a sorted name list to fuzzy.Source.
type categoryNames []string

func (c categoryNames) String(i int) string { return c[i] }
func (c categoryNames) Len() int            { return len(c) }

// CategoryCompletions returns lifetime completions per category. A non-empty
// match keeps only categories that fuzzy-match it.
func (e *Engine) CategoryCompletions(ctx context.Context, userID uuid.UUID, match string) map[string]int {
	out := make(map[string]int)

	l, err := e.repos.Stats.Find(ctx, userID)
	if err != nil {
		if !isMissing(err) {
			e.fail(ctx, "stats.category_completions", userID, err)
		}
		return out
	}

	for cat, n := range l.CategoryCompletions {
		out[cat] = n
	}
	if match == "" {
		return out
	}
	return filterCategories(out, match)
}

func filterCategories(counts map[string]int, pattern string) map[string]int {
	names := make(categoryNames, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]int)
	for _, m := range fuzzy.FindFrom(pattern, names) {
		out[names[m.Index]] = counts[names[m.Index]]
	}
	return out
}
