package search

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NotLocatedError reports that the locator endpoint does not know the
// benchmark.
type NotLocatedError struct {
	Matricule string
}

func (e *NotLocatedError) Error() string {
	return fmt.Sprintf("search: benchmark %q could not be located", e.Matricule)
}

// ParseLocation reads the longitude and latitude from the first line of a
// locator response, formatted as "<lon> <lat>|...".
func ParseLocation(matricule, text string) (lon, lat float64, err error) {
	first, _, _ := strings.Cut(text, "\n")
	first = strings.TrimSpace(first)
	if first == "1" {
		return 0, 0, &NotLocatedError{Matricule: matricule}
	}

	coords, _, _ := strings.Cut(first, "|")
	fields := strings.Fields(coords)
	if len(fields) != 2 {
		return 0, 0, &MalformedEntryError{
			Line:   1,
			Entry:  first,
			Reason: fmt.Sprintf("expected 2 coordinates, got %d", len(fields)),
		}
	}

	lon, err = strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, 0, &MalformedEntryError{Line: 1, Entry: first, Reason: "longitude is not a number", Err: err}
	}
	lat, err = strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return 0, 0, &MalformedEntryError{Line: 1, Entry: first, Reason: "latitude is not a number", Err: err}
	}
	return lon, lat, nil
}

// BBoxCoord floors a coordinate to one decimal, the granularity of the
// bounding-box endpoint: 2.1749 gives "2.1" and -5.0914 gives "-5.1".
func BBoxCoord(v float64) string {
	return strconv.FormatFloat(math.Floor(v*10)/10, 'f', 1, 64)
}
