// Package transcript fetches spoken-text transcripts for YouTube videos.
package transcript

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/abhisek/tubequiz/internal/apperr"
)

// Segment is one caption line.
type Segment struct {
	Text     string
	Start    time.Duration
	Duration time.Duration
}

// Provider fetches the transcript of a video by id.
type Provider interface {
	Fetch(ctx context.Context, videoID string) ([]Segment, error)
}

// Join concatenates segment texts with single spaces, in order.
func Join(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if t := strings.TrimSpace(s.Text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

// VideoID extracts the id from a watch URL: the "v" query parameter, or,
// for input that does not parse as a URL, the value after "v=" up to the
// next "&".
func VideoID(rawURL string) (string, error) {
	var id string
	if u, err := url.Parse(strings.TrimSpace(rawURL)); err == nil && u.RawQuery != "" {
		id = u.Query().Get("v")
	} else {
		_, rest, ok := strings.Cut(rawURL, "v=")
		if !ok {
			return "", fmt.Errorf("%w: no video id in %q", apperr.ErrInvalidArgument, rawURL)
		}
		id, _, _ = strings.Cut(rest, "&")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: no video id in %q", apperr.ErrInvalidArgument, rawURL)
	}
	return id, nil
}
