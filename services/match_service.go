package services

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/fadhlanhapp/billsplit-backend/utils"
)

// MatchService resolves a user-supplied, possibly misspelled email to an
// exact participant email. Identity is always the exact string; the
// similarity match only recovers from minor typos. There is no
// partial-name-to-domain inference.
type MatchService struct{}

// NewMatchService creates a new match service
func NewMatchService() *MatchService {
	return &MatchService{}
}

// FindClosestEmail returns the participant email most similar to the
// query, or false if none clears the cutoff. The query is lowercased
// before comparison.
func (s *MatchService) FindClosestEmail(query string, emails []string) (string, bool) {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return "", false
	}

	best := ""
	bestScore := 0.0

	for _, email := range emails {
		score := similarity(query, strings.ToLower(email))
		if score > bestScore {
			best = email
			bestScore = score
		}
	}

	if bestScore < utils.EmailMatchCutoff {
		return "", false
	}
	return best, true
}

// similarity maps edit distance to a 0..1 ratio
func similarity(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(longest)
}
