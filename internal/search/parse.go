// Package search parses the responses of the IGN benchmark search endpoint:
// the HTML fragment listing matching benchmarks, and the locator line giving
// the position of one of them.
package search

import (
	"fmt"
	"strconv"
	"strings"
)

// Candidate is one benchmark listed by the search endpoint.
type Candidate struct {
	ID   uint32 `json:"cid"`
	Name string `json:"matricule"`
}

const (
	noResultsMarker = "Pas de résultat"
	commentMarker   = "<!--"

	// separator replaces the markup between the id and the name of an entry.
	// Upstream never emits NUL in a name.
	separator = "\x00"
)

var unwrap = strings.NewReplacer(
	"<ul>", "",
	"</ul>", "",
	`<li id="`, "",
	`"><span><b>`, separator,
	"</b></span></li>", "",
)

// MalformedEntryError reports a search fragment line that is not an
// id/name pair.
type MalformedEntryError struct {
	Line   int // 1-based, counted after the wrapper markup is removed
	Entry  string
	Reason string
	Err    error
}

func (e *MalformedEntryError) Error() string {
	return fmt.Sprintf("search: malformed entry on line %d (%s): %q", e.Line, e.Reason, e.Entry)
}

func (e *MalformedEntryError) Unwrap() error { return e.Err }

// ParseResults extracts the candidates of a search response, in the order
// upstream listed them. A response carrying the no-results marker yields an
// empty slice and no error.
func ParseResults(text string) ([]Candidate, error) {
	if strings.Contains(text, noResultsMarker) {
		return []Candidate{}, nil
	}

	body := unwrap.Replace(text)
	if i := strings.Index(body, commentMarker); i >= 0 {
		body = body[:i]
	}
	body = strings.TrimSpace(body)

	lines := strings.Split(body, "\n")
	out := make([]Candidate, 0, len(lines))
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		parts := strings.Split(line, separator)
		if len(parts) != 2 {
			return nil, &MalformedEntryError{
				Line:   i + 1,
				Entry:  line,
				Reason: fmt.Sprintf("expected 2 fields, got %d", len(parts)),
			}
		}
		id, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil {
			return nil, &MalformedEntryError{
				Line:   i + 1,
				Entry:  line,
				Reason: "identifier is not an unsigned integer",
				Err:    err,
			}
		}
		out = append(out, Candidate{ID: uint32(id), Name: parts[1]})
	}
	return out, nil
}
