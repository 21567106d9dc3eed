// Package frequency counts how often dictionary words occur in a text and
// ranks them.
package frequency

import (
	"bufio"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/theflywheel/probetable"
	"github.com/theflywheel/probetable/internal/dictionary"
	"github.com/theflywheel/probetable/internal/rank"
	"golang.org/x/exp/rand"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Rarity classifies a word by its count relative to the most frequent word
type Rarity int

const (
	// Common words occur at least a hundredth as often as the top word.
	Common Rarity = iota
	// Uncommon words sit between Common and Rare.
	Uncommon
	// Rare words occur less than a thousandth as often as the top word.
	Rare
	// Misspelt words were never counted.
	Misspelt
)

func (r Rarity) String() string {
	switch r {
	case Common:
		return "common"
	case Uncommon:
		return "uncommon"
	case Rare:
		return "rare"
	case Misspelt:
		return "misspelt"
	default:
		return "unknown"
	}
}

// punctuation is the ASCII punctuation stripped from both ends of a token
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Entry is a word and the number of times it was seen
type Entry struct {
	Word  string
	Count int
}

// Counter counts occurrences of words that are in a dictionary
type Counter struct {
	dict   *dictionary.Dictionary
	counts *probetable.Table[int]
	// order lists counted words by first occurrence
	order []string
	lower cases.Caser

	// top caches MaxWord until the next count changes
	top      Entry
	topValid bool
}

// New creates a counter that only counts words found in dict. Counts are
// kept in a table with the given hash base and initial capacity.
func New(dict *dictionary.Dictionary, hashBase, capacity int) *Counter {
	return &Counter{
		dict:   dict,
		counts: probetable.New[int](hashBase, capacity),
		lower:  cases.Lower(language.Und),
	}
}

// Len returns the number of distinct words counted
func (c *Counter) Len() int {
	return len(c.order)
}

// Table returns the table holding the counts
func (c *Counter) Table() *probetable.Table[int] {
	return c.counts
}

// AddReader counts every whitespace-separated token of r. Tokens are
// stripped of surrounding punctuation and lower-cased; tokens that are not
// dictionary words are ignored.
func (c *Counter) AddReader(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		word := c.lower.String(strings.Trim(scanner.Text(), punctuation))
		if found, err := c.dict.FindWord(word); err != nil || !found {
			continue
		}
		if err := c.add(word); err != nil {
			return err
		}
	}
	return errors.Wrap(scanner.Err(), "scanning text")
}

func (c *Counter) add(word string) error {
	c.topValid = false
	n, err := c.counts.Get(word)
	switch {
	case errors.Is(err, probetable.ErrKeyNotFound):
		c.order = append(c.order, word)
		return c.counts.Set(word, 1)
	case err != nil:
		return err
	default:
		return c.counts.Set(word, n+1)
	}
}

// AddFile counts the words of the named file
func (c *Counter) AddFile(fs afero.Fs, name string) error {
	f, err := fs.Open(name)
	if err != nil {
		return errors.Wrapf(err, "opening text")
	}
	defer f.Close()
	return errors.Wrapf(c.AddReader(f), "counting %s", name)
}

// Count returns how often word was seen
func (c *Counter) Count(word string) int {
	n, err := c.counts.Get(c.lower.String(word))
	if err != nil {
		return 0
	}
	return n
}

// MaxWord returns the most frequent word. Ties go to the word seen first.
// The answer is computed once per batch of counted text.
func (c *Counter) MaxWord() (Entry, bool) {
	if !c.topValid {
		c.top = Entry{}
		for _, w := range c.order {
			if n := c.Count(w); n > c.top.Count {
				c.top = Entry{Word: w, Count: n}
			}
		}
		c.topValid = true
	}
	return c.top, c.top.Count > 0
}

// Rarity classifies word against the most frequent word
func (c *Counter) Rarity(word string) Rarity {
	n := c.Count(word)
	if n == 0 {
		return Misspelt
	}
	top, _ := c.MaxWord()
	switch {
	case 100*n >= top.Count:
		return Common
	case 1000*n < top.Count:
		return Rare
	default:
		return Uncommon
	}
}

// Ranking returns every counted word, most frequent first. Words with equal
// counts keep the order in which they were first seen, so the result does
// not depend on rng.
func (c *Counter) Ranking(rng *rand.Rand) []Entry {
	type ranked struct {
		Entry
		first int
	}
	items := make([]ranked, len(c.order))
	for i, w := range c.order {
		items[i] = ranked{Entry: Entry{Word: w, Count: c.Count(w)}, first: i}
	}
	rank.Quicksort(items, func(a, b ranked) bool {
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.first < b.first
	}, rng)

	out := make([]Entry, len(items))
	for i := range items {
		out[i] = items[i].Entry
	}
	return out
}
