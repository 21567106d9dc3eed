package cli

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/kr/pretty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/theflywheel/probetable/internal/config"
	"github.com/theflywheel/probetable/internal/log"
	"github.com/theflywheel/probetable/internal/report"
)

const (
	formatCSV   = "csv"
	formatTable = "table"
)

func newReportCommand(fs afero.Fs) *cobra.Command {
	var (
		configPath string
		format     string
		override   config.Config
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Load every combination of word list, capacity and hash base",
		Long: `report loads each configured word list into tables of every configured
capacity and hash base and writes one row of statistics per combination.
Without --config the built-in 27 combinations are used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.Load(fs, configPath); err != nil {
					return err
				}
			}
			applyOverrides(cmd.Flags(), &cfg, override)
			if err := cfg.Validate(); err != nil {
				return err
			}
			if format != formatCSV && format != formatTable {
				return errors.Newf("unknown format %q", format)
			}

			ctx := cmd.Context()
			if log.V(1) {
				log.Infof(ctx, "report config: %s", pretty.Sprint(cfg))
			}
			hash, _ := cfg.HashFunc()
			runner := report.Runner{
				FS:          fs,
				Budget:      cfg.MaxTime,
				Parallelism: cfg.Parallelism,
				HashFunc:    hash,
			}

			start := time.Now()
			rows, err := runner.Run(ctx, report.Combinations(cfg.Files, cfg.Capacities, cfg.Bases))
			if err != nil {
				return err
			}
			log.Infof(ctx, "ran %d combinations in %s", len(rows), time.Since(start))

			if format == formatTable {
				report.WriteTable(cmd.OutOrStdout(), rows)
				return nil
			}
			if cfg.Output == "-" {
				return report.WriteCSV(cmd.OutOrStdout(), rows)
			}
			return writeFile(fs, cfg.Output, func(f afero.File) error {
				return report.WriteCSV(f, rows)
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML file describing the combinations")
	f.StringVar(&format, "format", formatCSV, "output format, csv or table")
	f.StringVarP(&override.Output, "output", "o", "", "CSV output path, - for stdout")
	f.DurationVar(&override.MaxTime, "max-time", 0, "load budget per combination")
	f.IntVar(&override.Parallelism, "parallel", 1, "combinations to load at once")
	f.StringVar(&override.Hash, "hash", config.HashPolynomial, "hash function, polynomial or xxhash")
	return cmd
}

// applyOverrides copies into cfg the fields of override whose flags were set
// on the command line
func applyOverrides(flags *pflag.FlagSet, cfg *config.Config, override config.Config) {
	if flags.Changed("output") {
		cfg.Output = override.Output
	}
	if flags.Changed("max-time") {
		cfg.MaxTime = override.MaxTime
	}
	if flags.Changed("parallel") {
		cfg.Parallelism = override.Parallelism
	}
	if flags.Changed("hash") {
		cfg.Hash = override.Hash
	}
}

// writeFile creates path and hands it to write, closing it afterwards
func writeFile(fs afero.Fs, path string, write func(afero.File) error) (err error) {
	f, err := fs.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	defer func() {
		err = errors.CombineErrors(err, f.Close())
	}()
	return write(f)
}
