package cli

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/theflywheel/probetable"
	"github.com/theflywheel/probetable/internal/dictionary"
	"github.com/theflywheel/probetable/internal/log"
)

type tableFlags struct {
	base     int
	capacity int
	xxhash   bool
}

func (f *tableFlags) register(cmd *cobra.Command, base, capacity int) {
	cmd.Flags().IntVar(&f.base, "base", base, "hash base")
	cmd.Flags().IntVar(&f.capacity, "capacity", capacity, "initial table capacity")
	cmd.Flags().BoolVar(&f.xxhash, "xxhash", false, "hash with xxhash64 instead of the polynomial hash")
}

func (f *tableFlags) dictionary() *dictionary.Dictionary {
	var opts []dictionary.Option
	if f.xxhash {
		opts = append(opts, dictionary.WithHashFunc(probetable.XXHash))
	}
	return dictionary.New(f.base, f.capacity, opts...)
}

func newLoadCommand(fs afero.Fs) *cobra.Command {
	var (
		tf      tableFlags
		maxTime time.Duration
	)
	cmd := &cobra.Command{
		Use:   "load FILE",
		Short: "Load a word list and print the table statistics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := log.WithTag(cmd.Context(), "base", tf.base)
			d := tf.dictionary()

			start := time.Now()
			words, err := d.Load(ctx, fs, args[0], maxTime)
			elapsed := time.Since(start)
			out := cmd.OutOrStdout()
			switch {
			case errors.Is(err, dictionary.ErrTimeout):
				fmt.Fprintf(out, "loading time has exceeded the limit of %s\n", maxTime)
				elapsed = maxTime
			case err != nil:
				return err
			}

			t := d.Table()
			fmt.Fprintf(out, "words:    %s\n", humanize.Comma(int64(words)))
			fmt.Fprintf(out, "capacity: %s\n", humanize.Comma(int64(t.Capacity())))
			fmt.Fprintf(out, "time:     %s\n", elapsed.Round(time.Microsecond))
			fmt.Fprintf(out, "stats:    %s\n", t.Statistics())
			return nil
		},
	}
	tf.register(cmd, probetable.DefaultHashBase, probetable.DefaultCapacity)
	cmd.Flags().DurationVar(&maxTime, "max-time", 0, "give up loading after this long (0 means no limit)")
	return cmd
}
