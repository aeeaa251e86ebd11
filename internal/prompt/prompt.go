// Package prompt asks a person on the console to pick among search
// candidates.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"

	"github.com/jd-develop/geodesie-de-bureau/internal/search"
)

// Console lists candidates on Out and reads the chosen index from In. It
// re-asks until the answer is an index in range.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewConsole creates a Console chooser.
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

// Choose implements reconcile.Chooser.
func (c *Console) Choose(query string, candidates []search.Candidate) (int, error) {
	if len(candidates) == 0 {
		return 0, eris.New("prompt: no candidates to choose from")
	}

	fmt.Fprintf(c.out, "Repères found for %q:\n", query)
	tw := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	for i, cand := range candidates {
		fmt.Fprintf(tw, "%d:\t%s\t(id %d)\t\n", i, cand.Name, cand.ID)
	}
	if err := tw.Flush(); err != nil {
		return 0, eris.Wrap(err, "prompt: write candidates")
	}

	last := len(candidates) - 1
	for {
		fmt.Fprintf(c.out, "Your choice (0-%d): ", last)
		if !c.in.Scan() {
			if err := c.in.Err(); err != nil {
				return 0, eris.Wrap(err, "prompt: read choice")
			}
			return 0, eris.Wrap(io.ErrUnexpectedEOF, "prompt: no choice given")
		}
		i, err := strconv.Atoi(strings.TrimSpace(c.in.Text()))
		if err == nil && i >= 0 && i <= last {
			return i, nil
		}
		fmt.Fprintf(c.out, "Please enter a valid choice from 0 to %d\n", last)
	}
}
