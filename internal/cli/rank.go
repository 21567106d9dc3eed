package cli

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/theflywheel/probetable/internal/frequency"
	"github.com/theflywheel/probetable/internal/log"
	"golang.org/x/exp/rand"
)

func newRankCommand(fs afero.Fs) *cobra.Command {
	var (
		tf       tableFlags
		dictPath string
		top      int
		seed     uint64
	)
	cmd := &cobra.Command{
		Use:   "rank FILE",
		Short: "Rank the dictionary words of a text by frequency",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			d := tf.dictionary()
			if _, err := d.Load(ctx, fs, dictPath, 0); err != nil {
				return err
			}
			log.Infof(ctx, "dictionary %s: %d words", dictPath, d.Len())

			counter := frequency.New(d, tf.base, tf.capacity)
			if err := counter.AddFile(fs, args[0]); err != nil {
				return err
			}

			if !cmd.Flags().Changed("seed") {
				seed = uint64(time.Now().UnixNano())
			}
			ranking := counter.Ranking(rand.New(rand.NewSource(seed)))
			if top >= 0 && top < len(ranking) {
				ranking = ranking[:top]
			}

			out := cmd.OutOrStdout()
			for i, e := range ranking {
				fmt.Fprintf(out, "%s: '%s' occurs %s times and is %s\n",
					humanize.Ordinal(i+1), e.Word, humanize.Comma(int64(e.Count)), counter.Rarity(e.Word))
			}
			return nil
		},
	}
	tf.register(cmd, 250726, 1000081)
	f := cmd.Flags()
	f.StringVar(&dictPath, "dictionary", "english_large.txt", "word list of valid words")
	f.IntVar(&top, "top", 10, "number of words to show, negative for all")
	f.Uint64Var(&seed, "seed", 0, "pivot seed for the ranking sort")
	return cmd
}
