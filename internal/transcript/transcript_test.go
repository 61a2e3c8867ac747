package transcript

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tubequiz/internal/apperr"
)

func TestVideoID(t *testing.T) {
	tests := []struct {
		url  string
		want string
		ok   bool
	}{
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "dQw4w9WgXcQ", true},
		{"https://www.youtube.com/watch?v=abc123&t=42s", "abc123", true},
		{"https://youtube.com/watch?feature=share&v=xyz", "xyz", true},
		{"https://www.youtube.com/watch?dev=1&v=abc123", "abc123", true},
		{"https://www.youtube.com/watch?dev=1", "", false},
		{"v=abc123&t=5", "abc123", true},
		{"https://youtu.be/abc123", "", false},
		{"https://www.youtube.com/watch?v=", "", false},
		{"https://www.youtube.com/watch?v=&t=1", "", false},
		{"", "", false},
	}
	for _, tc := range tests {
		got, err := VideoID(tc.url)
		if tc.ok {
			assert.NoError(t, err, tc.url)
			assert.Equal(t, tc.want, got, tc.url)
		} else {
			assert.ErrorIs(t, err, apperr.ErrInvalidArgument, tc.url)
		}
	}
}

func TestJoin(t *testing.T) {
	segs := []Segment{{Text: "hello"}, {Text: "  "}, {Text: "big world "}}
	assert.Equal(t, "hello big world", Join(segs))
	assert.Equal(t, "", Join(nil))
}

func TestCleanCaption(t *testing.T) {
	tests := []struct{ in, want string }{
		{"plain text", "plain text"},
		{"Tom &amp;amp; Jerry", "Tom & Jerry"},
		{"it&amp;#39;s", "it's"},
		{"&lt;font color=&quot;#fff&quot;&gt;hi&lt;/font&gt;", "hi"},
		{"<s>word</s><s> next</s>", "word next"},
		{"x &lt; 5", "x < 5"},
		{"  line\nbreak  ", "line break"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, cleanCaption(tc.in), tc.in)
	}
}

func TestPickTrack(t *testing.T) {
	manualDE := captionTrack{BaseURL: "u1", LanguageCode: "de"}
	asrEN := captionTrack{BaseURL: "u2", LanguageCode: "en", Kind: "asr"}
	manualEN := captionTrack{BaseURL: "u3", LanguageCode: "en"}
	enGB := captionTrack{BaseURL: "u4", LanguageCode: "en-GB"}
	blocked := captionTrack{BaseURL: "u5&exp=xpe", LanguageCode: "en"}

	got, ok := pickTrack([]captionTrack{manualDE, asrEN, manualEN}, []string{"en"})
	require.True(t, ok)
	assert.Equal(t, manualEN, got)

	got, ok = pickTrack([]captionTrack{manualDE, asrEN}, []string{"en"})
	require.True(t, ok)
	assert.Equal(t, asrEN, got)

	got, ok = pickTrack([]captionTrack{manualDE, enGB}, []string{"fr"})
	require.True(t, ok)
	assert.Equal(t, enGB, got)

	got, ok = pickTrack([]captionTrack{manualDE}, []string{"fr"})
	require.True(t, ok)
	assert.Equal(t, manualDE, got)

	_, ok = pickTrack([]captionTrack{blocked}, []string{"en"})
	assert.False(t, ok)
}

func TestParseTimedText(t *testing.T) {
	body := `<?xml version="1.0" encoding="utf-8" ?><transcript>
<text start="0.5" dur="1.25">Hello &amp;amp; welcome</text>
<text start="2" dur="3">to the show</text>
<text start="5" dur="1"> </text>
</transcript>`
	segs, err := parseTimedText([]byte(body))
	require.NoError(t, err)
	require.Len(t, segs, 2)
	assert.Equal(t, Segment{Text: "Hello & welcome", Start: 500 * time.Millisecond, Duration: 1250 * time.Millisecond}, segs[0])
	assert.Equal(t, "to the show", segs[1].Text)

	format3 := `<timedtext format="3"><body><p t="1000" d="2000"><s>one</s><s> two</s></p></body></timedtext>`
	segs, err = parseTimedText([]byte(format3))
	require.NoError(t, err)
	require.Len(t, segs, 1)
	assert.Equal(t, Segment{Text: "one two", Start: time.Second, Duration: 2 * time.Second}, segs[0])

	_, err = parseTimedText([]byte("not xml <"))
	assert.Error(t, err)
}

func TestExtractJSON(t *testing.T) {
	data := []byte(`{"a":{"b":"}"},"c":"\"{"};var x = 1;`)
	assert.Equal(t, `{"a":{"b":"}"},"c":"\"{"}`, string(extractJSON(data)))
	assert.Nil(t, extractJSON([]byte(`{"open":`)))
	assert.Nil(t, extractJSON([]byte(`x`)))
}

const captionXML = `<transcript><text start="0" dur="1">first line</text><text start="1" dur="1">second line</text></transcript>`

func playerJSON(baseURL string) string {
	return fmt.Sprintf(`{"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[`+
		`{"baseUrl":"%[1]s/api/timedtext?lang=en&exp=xpe","languageCode":"en"},`+
		`{"baseUrl":"%[1]s/api/timedtext?lang=en","languageCode":"en","kind":"asr"}]}}}`, baseURL)
}

func TestYouTube_WatchPage(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/watch":
			assert.Equal(t, "vid1", r.URL.Query().Get("v"))
			fmt.Fprintf(w, `<html><script>var ytInitialPlayerResponse = %s;</script></html>`, playerJSON(srv.URL))
		case "/api/timedtext":
			assert.Equal(t, "en", r.URL.Query().Get("lang"))
			fmt.Fprint(w, captionXML)
		default:
			t.Errorf("unexpected request %s", r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	yt := NewYouTube(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	segs, err := yt.Fetch(context.Background(), "vid1")
	require.NoError(t, err)
	assert.Equal(t, "first line second line", Join(segs))
}

func TestYouTube_FallsBackToPlayer(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/watch":
			fmt.Fprint(w, `<html>consent wall</html>`)
		case playerPath:
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "3", r.Header.Get("X-Youtube-Client-Name"))
			fmt.Fprint(w, playerJSON(srv.URL))
		case "/api/timedtext":
			fmt.Fprint(w, captionXML)
		}
	}))
	defer srv.Close()

	yt := NewYouTube(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	segs, err := yt.Fetch(context.Background(), "vid1")
	require.NoError(t, err)
	assert.Len(t, segs, 2)
}

func TestYouTube_Unavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/watch":
			fmt.Fprint(w, `var ytInitialPlayerResponse = {"playabilityStatus":{"status":"ERROR","reason":"Video unavailable"}};`)
		case playerPath:
			fmt.Fprint(w, `{"playabilityStatus":{"status":"ERROR","reason":"Video unavailable"}}`)
		}
	}))
	defer srv.Close()

	yt := NewYouTube(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	_, err := yt.Fetch(context.Background(), "gone")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrUnavailable))
	assert.Contains(t, err.Error(), "Video unavailable")
}

func TestYouTube_EmptyID(t *testing.T) {
	_, err := NewYouTube().Fetch(context.Background(), "")
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

type countingProvider struct {
	calls atomic.Int32
	err   error
}

func (p *countingProvider) Fetch(_ context.Context, id string) ([]Segment, error) {
	p.calls.Add(1)
	if p.err != nil {
		return nil, p.err
	}
	return []Segment{{Text: "segment for " + id}}, nil
}

func TestCached(t *testing.T) {
	inner := &countingProvider{}
	c := NewCached(inner, time.Minute)

	for range 3 {
		segs, err := c.Fetch(context.Background(), "a")
		require.NoError(t, err)
		assert.Equal(t, "segment for a", Join(segs))
	}
	assert.Equal(t, int32(1), inner.calls.Load())

	_, err := c.Fetch(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, int32(2), inner.calls.Load())

	c.Forget("a")
	_, err = c.Fetch(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, int32(3), inner.calls.Load())
}

func TestCached_DoesNotCacheErrors(t *testing.T) {
	inner := &countingProvider{err: apperr.ErrUnavailable}
	c := NewCached(inner, 0)

	_, err := c.Fetch(context.Background(), "a")
	require.Error(t, err)
	_, err = c.Fetch(context.Background(), "a")
	require.Error(t, err)
	assert.Equal(t, int32(2), inner.calls.Load())
}
