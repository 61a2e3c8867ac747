package chunker

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tubequiz/internal/apperr"
)

func TestChunks_InvalidSize(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := Chunks("some words", n)
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperr.ErrInvalidArgument))
	}
}

func TestChunks_Empty(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t  \n"} {
		got, err := Collect(text, 3)
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestChunks_Boundaries(t *testing.T) {
	tests := []struct {
		name string
		text string
		max  int
		want []string
	}{
		{"exact multiple", "a b c d", 2, []string{"a b", "c d"}},
		{"short tail", "a b c d e", 2, []string{"a b", "c d", "e"}},
		{"single chunk", "one two three", 10, []string{"one two three"}},
		{"collapses whitespace", "  one\t\ttwo \n three  ", 2, []string{"one two", "three"}},
		{"unicode words", "héllo wörld ünï", 2, []string{"héllo wörld", "ünï"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Collect(tt.text, tt.max)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChunks_CoverageProperty(t *testing.T) {
	var b strings.Builder
	for i := range 1237 {
		b.WriteString("word")
		b.WriteString(strings.Repeat("x", i%5))
		if i%7 == 0 {
			b.WriteString("\n\n")
		} else {
			b.WriteString("  ")
		}
	}
	text := b.String()
	normalized := strings.Join(strings.Fields(text), " ")

	for _, max := range []int{1, 3, 50, 500, 5000} {
		chunks, err := Collect(text, max)
		require.NoError(t, err)

		assert.Equal(t, normalized, strings.Join(chunks, " "), "max=%d", max)
		for i, c := range chunks {
			n := len(strings.Fields(c))
			assert.LessOrEqual(t, n, max)
			if i < len(chunks)-1 {
				assert.Equal(t, max, n, "only the final chunk may be shorter")
			}
		}
	}
}

func TestChunks_Restartable(t *testing.T) {
	seq, err := Chunks("a b c d e", 2)
	require.NoError(t, err)

	var first, second []string
	for c := range seq {
		first = append(first, c)
	}
	for c := range seq {
		second = append(second, c)
	}
	assert.Equal(t, first, second)
}

func TestChunks_EarlyStop(t *testing.T) {
	seq, err := Chunks("a b c d e f", 1)
	require.NoError(t, err)

	var got []string
	for c := range seq {
		got = append(got, c)
		if len(got) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, got)
}
