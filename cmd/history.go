package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jd-develop/geodesie-de-bureau/internal/save"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List the objects of the save file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := cfg.Save.FilePath()
		if err != nil {
			return err
		}
		f, err := save.Load(path)
		if err != nil {
			return err
		}
		return printHistory(cmd.OutOrStdout(), f)
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

// printHistory lists saved objects with their visit count and last visit.
func printHistory(w io.Writer, f *save.File) error {
	if len(f.Objects) == 0 {
		_, err := fmt.Fprintln(w, "No saved object.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OBJECT\tNAME\tALTITUDE\tSTATE\tVISITS\tLAST VISIT")
	for _, o := range f.Objects {
		id := o.ObjectID()
		var name, altitude, state string
		switch {
		case o.Benchmark != nil:
			name = o.Benchmark.Matricule
			altitude = o.Benchmark.Altitude + " m"
			state = o.Benchmark.State.Label()
		case o.Other != nil:
			name = o.Other.Name
		}

		visits := f.VisitsOf(id)
		last := "-"
		if n := len(visits); n > 0 {
			last = visits[n-1].Date
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n", id, name, dash(altitude), dash(state), len(visits), last)
	}
	return tw.Flush()
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
