package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTags(t *testing.T) {
	ctx := context.Background()
	require.Equal(t, "", Tags(ctx))

	ctx = WithTag(ctx, "file", "french.txt")
	ctx = WithTag(ctx, "cap", 250727)
	require.Equal(t, "[file=french.txt,cap=250727] ", Tags(ctx))

	// Re-adding a key replaces its value.
	ctx = WithTag(ctx, "cap", 11)
	require.Equal(t, "[file=french.txt,cap=11] ", Tags(ctx))
}

func TestFormat(t *testing.T) {
	ctx := WithTag(context.Background(), "base", 31)
	require.Equal(t, "[base=31] loaded 3 words", render(ctx, "loaded %d words", []interface{}{3}))
}
