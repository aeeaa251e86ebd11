// Package reconcile narrows search candidates down to one benchmark and maps
// the matching bounding-box feature into a model.Benchmark.
package reconcile

import (
	"fmt"

	"github.com/jd-develop/geodesie-de-bureau/internal/search"
)

// NoMatchError reports a search that returned no candidate.
type NoMatchError struct {
	Query string
}

func (e *NoMatchError) Error() string {
	return fmt.Sprintf("reconcile: no benchmark matches %q", e.Query)
}

// ChoiceRequiredError is returned by choosers that cannot ask anyone, when a
// query leaves several candidates.
type ChoiceRequiredError struct {
	Query      string
	Candidates []search.Candidate
}

func (e *ChoiceRequiredError) Error() string {
	return fmt.Sprintf("reconcile: %d benchmarks match %q, a choice is required", len(e.Candidates), e.Query)
}

// Chooser picks one candidate among several. Candidates are given in upstream
// order. An index outside the slice is rejected and Choose is called again.
type Chooser interface {
	Choose(query string, candidates []search.Candidate) (int, error)
}

// ChooserFunc adapts a function to Chooser.
type ChooserFunc func(query string, candidates []search.Candidate) (int, error)

func (f ChooserFunc) Choose(query string, candidates []search.Candidate) (int, error) {
	return f(query, candidates)
}

// Refuse never chooses; it fails with ChoiceRequiredError. Used where no one
// can be prompted.
var Refuse Chooser = ChooserFunc(func(query string, candidates []search.Candidate) (int, error) {
	return 0, &ChoiceRequiredError{Query: query, Candidates: candidates}
})

// ByCID chooses the candidate with the given identifier, and refuses when
// none has it.
func ByCID(cid uint32) Chooser {
	return ChooserFunc(func(query string, candidates []search.Candidate) (int, error) {
		for i, c := range candidates {
			if c.ID == cid {
				return i, nil
			}
		}
		return 0, &ChoiceRequiredError{Query: query, Candidates: candidates}
	})
}

// Select returns the candidate a query designates: the only one, else the
// only one named exactly like the query, else the one the chooser picks.
func Select(query string, candidates []search.Candidate, chooser Chooser) (search.Candidate, error) {
	switch len(candidates) {
	case 0:
		return search.Candidate{}, &NoMatchError{Query: query}
	case 1:
		return candidates[0], nil
	}

	exact := -1
	for i, c := range candidates {
		if c.Name != query {
			continue
		}
		if exact >= 0 {
			exact = -1
			break
		}
		exact = i
	}
	if exact >= 0 {
		return candidates[exact], nil
	}

	if chooser == nil {
		chooser = Refuse
	}
	for {
		i, err := chooser.Choose(query, candidates)
		if err != nil {
			return search.Candidate{}, err
		}
		if i >= 0 && i < len(candidates) {
			return candidates[i], nil
		}
	}
}
