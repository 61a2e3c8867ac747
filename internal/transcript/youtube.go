package transcript

import (
	"bytes"
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/abhisek/tubequiz/internal/apperr"
	"github.com/abhisek/tubequiz/internal/logger"
)

// YouTube fetches captions from youtube.com.
// Primary:  scrape the watch page ytInitialPlayerResponse for caption tracks.
// Fallback: ANDROID Innertube /player for caption tracks.
// Either way the chosen track's timedtext XML is downloaded and parsed.
type YouTube struct {
	client  *http.Client
	baseURL string
	langs   []string
	log     *logger.Logger
}

// Option configures a YouTube provider.
type Option func(*YouTube)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(y *YouTube) { y.client = c }
}

// WithBaseURL points the provider at another host (used by tests).
func WithBaseURL(u string) Option {
	return func(y *YouTube) { y.baseURL = strings.TrimRight(u, "/") }
}

// WithLanguages sets the preferred caption languages, most preferred first.
func WithLanguages(langs ...string) Option {
	return func(y *YouTube) { y.langs = langs }
}

// WithLogger sets the logger for fallback warnings.
func WithLogger(l *logger.Logger) Option {
	return func(y *YouTube) { y.log = l }
}

// NewYouTube creates a YouTube transcript provider.
func NewYouTube(opts ...Option) *YouTube {
	y := &YouTube{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
		langs:   []string{"en"},
		log:     logger.Nop(),
	}
	for _, o := range opts {
		o(y)
	}
	return y
}

// Fetch implements Provider. Failures wrap apperr.ErrUnavailable.
func (y *YouTube) Fetch(ctx context.Context, videoID string) ([]Segment, error) {
	if videoID == "" {
		return nil, fmt.Errorf("%w: empty video id", apperr.ErrInvalidArgument)
	}

	tracks, err := y.tracksFromWatchPage(ctx, videoID)
	if err != nil {
		y.log.Warn("watch page scrape failed, trying innertube player",
			"video_id", videoID, "error", err)
		tracks, err = y.tracksFromPlayer(ctx, videoID)
		if err != nil {
			return nil, fmt.Errorf("%w: transcript for %s: %v", apperr.ErrUnavailable, videoID, err)
		}
	}

	track, ok := pickTrack(tracks, y.langs)
	if !ok {
		return nil, fmt.Errorf("%w: transcript for %s: all caption tracks require a browser token",
			apperr.ErrUnavailable, videoID)
	}

	segments, err := y.fetchTimedText(ctx, track.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: transcript for %s: %v", apperr.ErrUnavailable, videoID, err)
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: transcript for %s is empty", apperr.ErrUnavailable, videoID)
	}

	y.log.Debug("transcript fetched", "video_id", videoID,
		"lang", track.LanguageCode, "kind", track.Kind, "segments", len(segments))
	return segments, nil
}

func (y *YouTube) tracksFromWatchPage(ctx context.Context, videoID string) ([]captionTrack, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, y.baseURL+"/watch?v="+videoID, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	body, err := y.do(req, maxWatchPageBytes)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}

	idx := bytes.Index(body, []byte(playerResponseMarker))
	if idx < 0 {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	raw := extractJSON(body[idx+len(playerResponseMarker):])
	if raw == nil {
		return nil, errors.New("malformed ytInitialPlayerResponse")
	}

	var resp playerResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	return captionTracks(resp)
}

func (y *YouTube) tracksFromPlayer(ctx context.Context, videoID string) ([]captionTrack, error) {
	payload, err := json.Marshal(playerRequest{
		VideoID: videoID,
		Context: playerContext{Client: playerClient{
			ClientName:        "ANDROID",
			ClientVersion:     androidVersion,
			AndroidSdkVersion: 30,
			Hl:                "en",
			Gl:                "US",
		}},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		y.baseURL+playerPath+"?prettyPrint=false", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", androidUserAgent)
	req.Header.Set("X-Youtube-Client-Name", "3")
	req.Header.Set("X-Youtube-Client-Version", androidVersion)

	body, err := y.do(req, maxWatchPageBytes)
	if err != nil {
		return nil, fmt.Errorf("innertube player: %w", err)
	}

	var resp playerResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode player: %w", err)
	}
	return captionTracks(resp)
}

func (y *YouTube) fetchTimedText(ctx context.Context, trackURL string) ([]Segment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", browserUserAgent)

	body, err := y.do(req, maxTimedTextBytes)
	if err != nil {
		return nil, fmt.Errorf("timedtext: %w", err)
	}
	return parseTimedText(body)
}

func (y *YouTube) do(req *http.Request, limit int64) ([]byte, error) {
	resp, err := y.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, snippet)
	}
	return io.ReadAll(io.LimitReader(resp.Body, limit))
}

func captionTracks(resp playerResponse) ([]captionTrack, error) {
	if resp.Captions == nil {
		if resp.PlayabilityStatus != nil && resp.PlayabilityStatus.Reason != "" {
			return nil, fmt.Errorf("captions unavailable: %s", resp.PlayabilityStatus.Reason)
		}
		return nil, errors.New("no captions in player response")
	}
	tracks := resp.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, errors.New("no caption tracks")
	}
	return tracks, nil
}

// needsPoToken reports whether a caption URL only works in a browser.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickTrack prefers a manual track in a preferred language, then an
// auto-generated one, then any English track, then the first usable track.
func pickTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}

	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

func parseTimedText(body []byte) ([]Segment, error) {
	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("parse timedtext XML: %w", err)
	}

	var out []Segment
	for _, t := range tt.Texts {
		if text := cleanCaption(t.Body); text != "" {
			out = append(out, Segment{
				Text:     text,
				Start:    seconds(t.Start),
				Duration: seconds(t.Dur),
			})
		}
	}
	for _, p := range tt.Paragraphs {
		if text := cleanCaption(p.Body); text != "" {
			out = append(out, Segment{
				Text:     text,
				Start:    millis(p.T),
				Duration: millis(p.D),
			})
		}
	}
	return out, nil
}

func seconds(s string) time.Duration {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return time.Duration(f * float64(time.Second))
}

func millis(s string) time.Duration {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return time.Duration(n) * time.Millisecond
}

// extractJSON returns the balanced JSON object at the start of data.
func extractJSON(data []byte) []byte {
	if len(data) == 0 || data[0] != '{' {
		return nil
	}
	depth := 0
	inString := false
	escaped := false
	for i, c := range data {
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return data[:i+1]
			}
		}
	}
	return nil
}
