package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// defaultLimit caps searches that don't specify one.
const defaultLimit = 20

// Search runs a full-text query over title and author and returns the
// matching book slugs, best match first.
func (s *Index) Search(ctx context.Context, queryText string, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	queryText = strings.TrimSpace(queryText)
	if queryText == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = defaultLimit
	}

	searchRequest := bleve.NewSearchRequestOptions(buildBookQuery(queryText), limit, 0, false)
	searchRequest.SortBy([]string{"-_score"})

	searchResult, err := s.index.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	slugs := make([]string, 0, len(searchResult.Hits))
	for _, hit := range searchResult.Hits {
		slugs = append(slugs, hit.ID)
	}
	return slugs, nil
}

// buildBookQuery constructs the Bleve query for a text search.
// Title matches rank highest, then author, with fuzzy and prefix
// variants for typo tolerance and autocomplete.
func buildBookQuery(queryText string) query.Query {
	textQueries := []query.Query{}

	titleMatch := bleve.NewMatchQuery(queryText)
	titleMatch.SetField("title")
	titleMatch.SetBoost(3.0)
	textQueries = append(textQueries, titleMatch)

	authorMatch := bleve.NewMatchQuery(queryText)
	authorMatch.SetField("author")
	authorMatch.SetBoost(1.5)
	textQueries = append(textQueries, authorMatch)

	fuzzyQuery := bleve.NewFuzzyQuery(queryText)
	fuzzyQuery.SetFuzziness(1)
	fuzzyQuery.SetField("title")
	fuzzyQuery.SetBoost(0.8)
	textQueries = append(textQueries, fuzzyQuery)

	// Prefix query for autocomplete (minimum 2 chars)
	if len(queryText) >= 2 {
		prefixQuery := bleve.NewPrefixQuery(strings.ToLower(queryText))
		prefixQuery.SetField("title")
		prefixQuery.SetBoost(0.5)
		textQueries = append(textQueries, prefixQuery)
	}

	return bleve.NewDisjunctionQuery(textQueries...)
}
