package feature

import (
	"fmt"
	"strconv"
	"strings"
)

// NotFoundError reports that no feature of a bounding-box response carries
// the requested name. The search and bounding-box endpoints disagree.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("feature: no feature named %q in bounding box", e.Name)
}

// AmbiguousError reports several features sharing the requested name.
type AmbiguousError struct {
	Name string
	CIDs []int64
}

func (e *AmbiguousError) Error() string {
	ids := make([]string, len(e.CIDs))
	for i, cid := range e.CIDs {
		ids[i] = strconv.FormatInt(cid, 10)
	}
	return fmt.Sprintf("feature: %d features named %q (cid %s)", len(e.CIDs), e.Name, strings.Join(ids, ", "))
}

// FindByName returns the only feature whose rn_nom equals name exactly.
func FindByName(features []Feature, name string) (Feature, error) {
	var (
		found Feature
		cids  []int64
	)
	for _, f := range features {
		if f.Properties.Name != name {
			continue
		}
		if len(cids) == 0 {
			found = f
		}
		cids = append(cids, f.Properties.CID)
	}

	switch len(cids) {
	case 0:
		return Feature{}, &NotFoundError{Name: name}
	case 1:
		return found, nil
	default:
		return Feature{}, &AmbiguousError{Name: name, CIDs: cids}
	}
}
