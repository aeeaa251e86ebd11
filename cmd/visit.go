package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jd-develop/geodesie-de-bureau/internal/codes"
	"github.com/jd-develop/geodesie-de-bureau/internal/save"
)

var (
	visitDate  string
	visitState string
	visitNotes string
	visitOther string
)

var visitCmd = &cobra.Command{
	Use:   "visit [object-id]",
	Short: "Record a visit of a saved object",
	Long: "Records a visit of an object of the save file, identified as shown by history (ign-nivf/<cid> or autre/<id>). " +
		"With --other, saves a new object entered by hand and records the visit on it.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if (len(args) == 1) == (visitOther != "") {
			return eris.New("visit: give either an object id or --other")
		}

		var state codes.State
		if visitState != "" {
			s, err := codes.ParseState(visitState)
			if err != nil {
				return eris.Wrap(err, "visit: --state")
			}
			state = s
		}

		path, err := cfg.Save.FilePath()
		if err != nil {
			return err
		}
		f, err := save.Load(path)
		if err != nil {
			return err
		}

		var objectID string
		if len(args) == 1 {
			objectID = args[0]
		} else {
			objectID = f.AddOther(visitOther, "").ObjectID()
		}

		v, err := f.AddVisit(objectID, visitDate, state, visitNotes)
		if err != nil {
			return err
		}
		if err := save.Write(path, f); err != nil {
			return err
		}

		zap.L().Info("visit recorded", zap.String("object", objectID), zap.String("visit", v.ID))
		fmt.Fprintf(cmd.OutOrStdout(), "Visit of %s on %s recorded.\n", objectID, v.Date)
		return nil
	},
}

func init() {
	visitCmd.Flags().StringVar(&visitDate, "date", "", "visit date, YYYY-MM-DD (default today)")
	visitCmd.Flags().StringVar(&visitState, "state", "", "observed state code (D, E, I, M, N, P, S or Y)")
	visitCmd.Flags().StringVar(&visitNotes, "notes", "", "free-text notes")
	visitCmd.Flags().StringVar(&visitOther, "other", "", "name of an object entered by hand")
	rootCmd.AddCommand(visitCmd)
}
