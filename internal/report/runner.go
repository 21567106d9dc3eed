// Package report loads word lists under every combination of capacity and
// hash base and tabulates the resulting table statistics.
package report

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/theflywheel/probetable"
	"github.com/theflywheel/probetable/internal/dictionary"
	"github.com/theflywheel/probetable/internal/log"
	"golang.org/x/sync/errgroup"
)

// Combination is one experiment: a word list loaded into a table of the
// given initial capacity and hash base
type Combination struct {
	File     string
	Capacity int
	Base     int
}

// Combinations returns the cross product of its arguments with the base
// varying slowest and the file fastest
func Combinations(files []string, capacities, bases []int) []Combination {
	combos := make([]Combination, 0, len(files)*len(capacities)*len(bases))
	for _, base := range bases {
		for _, capacity := range capacities {
			for _, file := range files {
				combos = append(combos, Combination{File: file, Capacity: capacity, Base: base})
			}
		}
	}
	return combos
}

// Row is the outcome of one combination
type Row struct {
	Combination
	// Words is the number of distinct words loaded, which is partial when
	// TimedOut is set.
	Words int
	Stats probetable.Stats
	// LoadTime is the measured load time, or the budget on a timeout.
	LoadTime time.Duration
	TimedOut bool
}

// Runner loads every combination into a fresh dictionary
type Runner struct {
	FS afero.Fs
	// Budget bounds the load time of a single combination; 0 disables it.
	Budget time.Duration
	// Parallelism bounds how many combinations load at once. Values below
	// one mean one.
	Parallelism int
	// HashFunc overrides the polynomial hash when set.
	HashFunc probetable.HashFunc
	// Now overrides time.Now when set.
	Now func() time.Time
}

// Run loads every combination and returns one row per combination in the
// same order. A combination that runs out of budget still produces a row;
// any other failure aborts the run.
func (r Runner) Run(ctx context.Context, combos []Combination) ([]Row, error) {
	rows := make([]Row, len(combos))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, r.Parallelism))
	for i := range combos {
		i := i
		g.Go(func() error {
			row, err := r.runOne(ctx, combos[i])
			if err != nil {
				return err
			}
			rows[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r Runner) runOne(ctx context.Context, c Combination) (Row, error) {
	ctx = log.WithTag(ctx, "cap", c.Capacity)
	ctx = log.WithTag(ctx, "base", c.Base)

	now := r.Now
	if now == nil {
		now = time.Now
	}
	opts := []dictionary.Option{dictionary.WithClock(now)}
	if r.HashFunc != nil {
		opts = append(opts, dictionary.WithHashFunc(r.HashFunc))
	}
	d := dictionary.New(c.Base, c.Capacity, opts...)

	start := now()
	words, err := d.Load(ctx, r.FS, c.File, r.Budget)
	row := Row{
		Combination: c,
		Words:       words,
		Stats:       d.Table().Statistics(),
		LoadTime:    now().Sub(start),
	}
	switch {
	case errors.Is(err, dictionary.ErrTimeout):
		row.LoadTime = r.Budget
		row.TimedOut = true
	case err != nil:
		return Row{}, errors.Wrapf(err, "%s (capacity=%d, base=%d)", c.File, c.Capacity, c.Base)
	}

	log.Infof(log.WithTag(ctx, "file", c.File), "%d words in %s: %s", row.Words, row.LoadTime, row.Stats)
	return row, nil
}
