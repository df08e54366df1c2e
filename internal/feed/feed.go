// Package feed holds the client side view state of the article feed: which
// cards are rendered, which of them a search hides and the per card like
// toggles. It performs no I/O; renderers read a View and draw it.
package feed

import (
	"strings"

	"github.com/SergeyParamoshkin/cardfeed/internal/model"
)

// Filter returns the ids of the articles matching query, in input order.
// Matching is a case-insensitive substring test on title and description;
// a blank query matches everything.
func Filter(articles []model.Article, query string) []string {
	q := normalizeQuery(query)

	ids := make([]string, 0, len(articles))
	for _, a := range articles {
		if matches(a, q) {
			ids = append(ids, a.ID)
		}
	}

	return ids
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func matches(a model.Article, q string) bool {
	if q == "" {
		return true
	}

	return strings.Contains(strings.ToLower(a.Title), q) ||
		strings.Contains(strings.ToLower(a.Description), q)
}
