package search

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// InvalidQueryError reports a query that cannot be sent upstream.
type InvalidQueryError struct {
	Query  string
	Reason string
}

func (e *InvalidQueryError) Error() string {
	return fmt.Sprintf("search: invalid query %q: %s", e.Query, e.Reason)
}

// NormalizeQuery prepares a free-text matricule for the search endpoint:
// NFC normalisation, typographic apostrophes replaced by ASCII ones, and
// surrounding whitespace trimmed.
func NormalizeQuery(query string) (string, error) {
	q := norm.NFC.String(query)
	q = strings.ReplaceAll(q, "’", "'")
	q = strings.TrimSpace(q)

	if q == "" {
		return "", &InvalidQueryError{Query: query, Reason: "empty"}
	}
	// The locator request uses | to separate its fields.
	if strings.Contains(q, "|") {
		return "", &InvalidQueryError{Query: query, Reason: "contains '|'"}
	}
	return q, nil
}

// LocatorKey builds the h_recherche value identifying a benchmark by name.
// Apostrophes are doubled the way the upstream SQL backend expects.
func LocatorKey(matricule string) string {
	return "repere|" + strings.ReplaceAll(matricule, "'", "''")
}
