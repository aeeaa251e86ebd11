package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jd-develop/geodesie-de-bureau/internal/config"
	"github.com/jd-develop/geodesie-de-bureau/internal/prompt"
	"github.com/jd-develop/geodesie-de-bureau/internal/render"
	"github.com/jd-develop/geodesie-de-bureau/internal/save"
)

var cfg *config.Config

var (
	rootMatricule   string
	rootFormat      string
	rootSave        bool
	rootNoColor     bool
	rootDiagnostics bool
)

var rootCmd = &cobra.Command{
	Use:   "geodesie",
	Short: "Look up IGN leveling benchmarks",
	Long:  "Searches the IGN geodesy site for a leveling benchmark (repère de nivellement), prints its record and keeps it in a local save file.",
	Args:  cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := c.Validate(); err != nil {
			return err
		}
		cfg = c
		if rootDiagnostics {
			cfg.Display.Diagnostics = true
		}

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if rootMatricule == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "No benchmark given. Use -m/--matricule, for example: geodesie -m \"T'.D.S3 - 50\"")
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		opts, err := displayOptions(cmd)
		if err != nil {
			return err
		}

		env, err := initLookup(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		chooser := prompt.NewConsole(cmd.InOrStdin(), cmd.OutOrStdout())
		b, err := env.Service.Lookup(ctx, rootMatricule, chooser)
		if err != nil {
			return err
		}

		out, err := render.Record(b, opts.format, opts.style)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)

		if !rootSave {
			return nil
		}
		path, err := cfg.Save.FilePath()
		if err != nil {
			return err
		}
		f, err := save.Load(path)
		if err != nil {
			return err
		}
		added := f.AddBenchmark(b)
		if err := save.Write(path, f); err != nil {
			return err
		}
		zap.L().Info("benchmark saved",
			zap.String("object", b.ObjectID()),
			zap.Bool("new", added),
			zap.String("path", path),
		)
		return nil
	},
}

type display struct {
	format render.Format
	style  render.Style
}

// displayOptions merges the display flags over the configuration.
func displayOptions(cmd *cobra.Command) (display, error) {
	name := cfg.Display.Format
	if cmd.Flags().Changed("format") {
		name = rootFormat
	}
	format, err := render.ParseFormat(name)
	if err != nil {
		return display{}, eris.Wrap(err, "display format")
	}
	color := cfg.Display.Color && !rootNoColor
	return display{format: format, style: render.StyleFor(color)}, nil
}

func init() {
	rootCmd.Flags().StringVarP(&rootMatricule, "matricule", "m", "", "benchmark name to look up")
	rootCmd.PersistentFlags().StringVar(&rootFormat, "format", "text", "output format: text, json or yaml")
	rootCmd.Flags().BoolVar(&rootSave, "save", false, "store the record in the save file")
	rootCmd.PersistentFlags().BoolVar(&rootNoColor, "no-color", false, "disable ANSI colors")
	rootCmd.PersistentFlags().BoolVar(&rootDiagnostics, "diagnostics", false, "log raw payload excerpts on decode errors")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
