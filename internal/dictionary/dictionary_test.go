package dictionary

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
	"github.com/theflywheel/probetable"
)

// tickingClock advances by step on every reading
func tickingClock(step time.Duration) func() time.Time {
	now := time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func writeFile(t *testing.T, fs afero.Fs, name, contents string) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, name, []byte(contents), 0644))
}

func TestLoad(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "words.txt", "apple\nbanana  \r\n\ncherry\napple\n\t\nDurian")

	d := New(31, 11)
	n, err := d.Load(context.Background(), fs, "words.txt", 0)
	require.NoError(t, err)
	require.Equal(t, 4, n)

	for _, w := range []string{"apple", "banana", "cherry", "durian"} {
		v, err := d.Table().Get(w)
		require.NoError(t, err, w)
		require.Equal(t, 1, v)
	}
	require.False(t, d.Table().Contains(""))
	require.False(t, d.Table().Contains("Durian"))
}

func TestLoadMixedCase(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "cities.txt", "Paris\nLondon\nPARIS\n")

	d := New(31, 11)
	n, err := d.Load(context.Background(), fs, "cities.txt", 0)
	require.NoError(t, err)
	require.Equal(t, 2, n)

	for _, w := range []string{"Paris", "paris", "LONDON"} {
		found, err := d.FindWord(w)
		require.NoError(t, err)
		require.True(t, found, w)
	}

	require.NoError(t, d.DeleteWord("Paris"))
	found, err := d.FindWord("paris")
	require.NoError(t, err)
	require.False(t, found)
	require.Equal(t, 1, d.Len())
}

func TestLoadTimeout(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "words.txt", "a\nb\nc\nd\ne\nf\n")

	d := New(31, 11, WithClock(tickingClock(time.Second)))
	n, err := d.Load(context.Background(), fs, "words.txt", 2500*time.Millisecond)
	require.True(t, errors.Is(err, ErrTimeout), "%v", err)
	require.Equal(t, 3, n)
	require.Equal(t, 3, d.Len())

	// The partially loaded table stays usable.
	require.Equal(t, 0, d.Table().Statistics().Rehashes)
	found, err := d.FindWord("c")
	require.NoError(t, err)
	require.True(t, found)
	found, err = d.FindWord("d")
	require.NoError(t, err)
	require.False(t, found)
}

func TestLoadNoBudget(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "words.txt", "a\nb\nc\nd\ne\nf\n")

	d := New(31, 3, WithClock(tickingClock(time.Hour)))
	n, err := d.Load(context.Background(), fs, "words.txt", 0)
	require.NoError(t, err)
	require.Equal(t, 6, n)
	require.Greater(t, d.Table().Statistics().Rehashes, 0)
}

func TestLoadCanceled(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeFile(t, fs, "words.txt", "a\nb\nc\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := New(31, 11)
	n, err := d.Load(ctx, fs, "words.txt", 0)
	require.True(t, errors.Is(err, context.Canceled), "%v", err)
	require.False(t, errors.Is(err, ErrTimeout))
	require.Equal(t, 1, n)
}

func TestLoadMissingFile(t *testing.T) {
	d := New(31, 11)
	_, err := d.Load(context.Background(), afero.NewMemMapFs(), "nope.txt", 0)
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist), "%v", err)
}

func TestWords(t *testing.T) {
	d := New(27183, 11)

	require.NoError(t, d.AddWord("Hello"))
	require.NoError(t, d.AddWord("ÉCOLE"))

	for _, w := range []string{"hello", "HELLO", "Hello", "école"} {
		found, err := d.FindWord(w)
		require.NoError(t, err)
		require.True(t, found, w)
	}
	found, err := d.FindWord("world")
	require.NoError(t, err)
	require.False(t, found)

	require.NoError(t, d.DeleteWord("HeLLo"))
	found, err = d.FindWord("hello")
	require.NoError(t, err)
	require.False(t, found)

	err = d.DeleteWord("hello")
	require.True(t, errors.Is(err, probetable.ErrKeyNotFound), "%v", err)
	require.Equal(t, 1, d.Len())
}

func TestInvalidWords(t *testing.T) {
	d := New(31, 11)
	for _, w := range []string{"", "42", "0007", "٣"} {
		require.True(t, errors.Is(d.AddWord(w), ErrInvalidWord), "%q", w)
		_, err := d.FindWord(w)
		require.True(t, errors.Is(err, ErrInvalidWord), "%q", w)
		require.True(t, errors.Is(d.DeleteWord(w), ErrInvalidWord), "%q", w)
	}
	require.Equal(t, 0, d.Len())

	// Digits mixed with letters are words.
	require.NoError(t, d.AddWord("4ever"))
}

func TestWithHashFunc(t *testing.T) {
	d := New(31, 11, WithHashFunc(probetable.XXHash))
	require.Equal(t, probetable.XXHash("word", 31, 11), d.Table().Hash("word"))
}
