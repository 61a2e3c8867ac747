// Package chunker splits long text into word-bounded chunks small enough for
// a single generation request.
package chunker

import (
	"fmt"
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/abhisek/tubequiz/internal/apperr"
)

// DefaultMaxWords is the chunk size used for transcript summarization.
const DefaultMaxWords = 500

// Chunks returns a lazy sequence of chunks of at most maxWords words each.
// Words are whitespace-delimited and joined by single spaces inside a chunk.
// The sequence can be ranged over any number of times.
func Chunks(text string, maxWords int) (iter.Seq[string], error) {
	if maxWords <= 0 {
		return nil, fmt.Errorf("%w: chunk size must be positive, got %d", apperr.ErrInvalidArgument, maxWords)
	}

	return func(yield func(string) bool) {
		var b strings.Builder
		n := 0
		for w := range words(text) {
			if n > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(w)
			n++
			if n == maxWords {
				if !yield(b.String()) {
					return
				}
				b.Reset()
				n = 0
			}
		}
		if n > 0 {
			yield(b.String())
		}
	}, nil
}

// Collect drains Chunks into a slice.
func Collect(text string, maxWords int) ([]string, error) {
	seq, err := Chunks(text, maxWords)
	if err != nil {
		return nil, err
	}
	var out []string
	for c := range seq {
		out = append(out, c)
	}
	return out, nil
}

// words yields whitespace-delimited words without allocating the full field
// list up front.
func words(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := -1
		for i := 0; i < len(text); {
			r, size := utf8.DecodeRuneInString(text[i:])
			if unicode.IsSpace(r) {
				if start >= 0 {
					if !yield(text[start:i]) {
						return
					}
					start = -1
				}
			} else if start < 0 {
				start = i
			}
			i += size
		}
		if start >= 0 {
			yield(text[start:])
		}
	}
}
