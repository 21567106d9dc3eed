// Package dictionary is a word list backed by a probetable.Table. It loads
// word files under an optional time budget and answers membership queries.
package dictionary

import (
	"bufio"
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/theflywheel/probetable"
	"github.com/theflywheel/probetable/internal/log"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// ErrInvalidWord is returned for empty or purely numeric words
	ErrInvalidWord = errors.New("invalid word")

	// ErrTimeout is returned by Load when the time budget runs out. The
	// words inserted so far stay in the dictionary.
	ErrTimeout = errors.New("loading time limit exceeded")
)

// maxLineLength bounds a single line of a word file
const maxLineLength = 1 << 20

// Dictionary holds words as keys of a hash table. The value stored for each
// word is always 1.
type Dictionary struct {
	table *probetable.Table[int]
	lower cases.Caser
	now   func() time.Time
}

// Option configures a Dictionary
type Option func(*options)

type options struct {
	now      func() time.Time
	hashFunc probetable.HashFunc
}

// WithClock replaces time.Now for measuring the load budget
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

// WithHashFunc makes the underlying table hash with fn
func WithHashFunc(fn probetable.HashFunc) Option {
	return func(o *options) {
		o.hashFunc = fn
	}
}

// New creates an empty dictionary over a table with the given hash base
// and initial capacity
func New(hashBase, capacity int, opts ...Option) *Dictionary {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	var tableOpts []probetable.Option
	if o.hashFunc != nil {
		tableOpts = append(tableOpts, probetable.WithHashFunc(o.hashFunc))
	}
	return &Dictionary{
		table: probetable.New[int](hashBase, capacity, tableOpts...),
		lower: cases.Lower(language.Und),
		now:   o.now,
	}
}

// Table returns the underlying hash table
func (d *Dictionary) Table() *probetable.Table[int] {
	return d.table
}

// Len returns the number of distinct words
func (d *Dictionary) Len() int {
	return d.table.Len()
}

// Load reads one word per line from filename and inserts each of them.
// Trailing whitespace is trimmed, blank lines are skipped and words are
// lower-cased, so that every lookup sees the same form. A budget of zero
// means no limit.
//
// When the budget runs out or ctx is done, Load stops and returns the
// number of words loaded so far together with the error. The error wraps
// ErrTimeout when the budget was exceeded.
func (d *Dictionary) Load(
	ctx context.Context, fs afero.Fs, filename string, budget time.Duration,
) (int, error) {
	ctx = log.WithTag(ctx, "file", filename)

	f, err := fs.Open(filename)
	if err != nil {
		return d.Len(), errors.Wrapf(err, "opening word list")
	}
	defer f.Close()

	start := d.now()
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for scanner.Scan() {
		word := d.lower.String(strings.TrimRightFunc(scanner.Text(), unicode.IsSpace))
		if word == "" {
			continue
		}
		if err := d.table.Set(word, 1); err != nil {
			return d.Len(), errors.Wrapf(err, "loading %s", filename)
		}

		if budget > 0 {
			if elapsed := d.now().Sub(start); elapsed > budget {
				log.Warningf(ctx, "loading time has exceeded the limit of %s after %d words", budget, d.Len())
				return d.Len(), errors.Mark(
					errors.Newf("loading %s took longer than %s", filename, budget), ErrTimeout)
			}
		}
		if err := ctx.Err(); err != nil {
			return d.Len(), errors.Wrapf(err, "loading %s", filename)
		}
	}
	if err := scanner.Err(); err != nil {
		return d.Len(), errors.Wrapf(err, "reading %s", filename)
	}

	log.VInfof(ctx, 1, "loaded %d words in %s: %s", d.Len(), d.now().Sub(start), d.table.Statistics())
	return d.Len(), nil
}

// normalize lower-cases word after checking that it is a word at all
func (d *Dictionary) normalize(word string) (string, error) {
	if word == "" {
		return "", errors.Mark(errors.New("empty word"), ErrInvalidWord)
	}
	if isNumber(word) {
		return "", errors.WithHint(
			errors.Mark(errors.Newf("%q is a number", word), ErrInvalidWord),
			"it must be a word, not a number")
	}
	return d.lower.String(word), nil
}

// isNumber reports whether every rune of s is a decimal digit
func isNumber(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// AddWord inserts the lower-cased word
func (d *Dictionary) AddWord(word string) error {
	w, err := d.normalize(word)
	if err != nil {
		return err
	}
	return d.table.Set(w, 1)
}

// FindWord reports whether the lower-cased word is in the dictionary
func (d *Dictionary) FindWord(word string) (bool, error) {
	w, err := d.normalize(word)
	if err != nil {
		return false, err
	}
	return d.table.Contains(w), nil
}

// DeleteWord removes the lower-cased word. Deleting a word that is not in
// the dictionary returns an error matching probetable.ErrKeyNotFound.
func (d *Dictionary) DeleteWord(word string) error {
	w, err := d.normalize(word)
	if err != nil {
		return err
	}
	return d.table.Delete(w)
}
