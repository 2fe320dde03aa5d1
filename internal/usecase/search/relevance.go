package search

import (
	"strings"

	"github.com/vetdirhq/vetdir/internal/domain"
)

// Relevance weights. Name hits dominate, areas served and description refine.
const (
	weightNamePrefix  = 2.0
	weightName        = 4.0
	weightAreasServed = 2.0
	weightDescription = 1.0
)

// relevanceScore rates how strongly a business matches the query text.
// Candidates reaching this point already passed the keyword substring filter;
// the score only orders them (substring filter + relevance sort key).
func relevanceScore(b *domain.Business, query string) float64 {
	q := strings.ToLower(query)
	var score float64

	if name := strings.ToLower(b.Name); strings.Contains(name, q) {
		score += weightName
		if strings.HasPrefix(name, q) {
			score += weightNamePrefix
		}
	}
	if containsFold(b.AreasServed, q) {
		score += weightAreasServed
	}
	if containsFold(b.Description, q) {
		score += weightDescription
	}
	return score
}
