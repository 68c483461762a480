package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/theuerc/riddle-me-this/internal/model"
)

// CaptionsClient lists and fetches a video's caption tracks.
type CaptionsClient interface {
	// ListTracks returns every caption track with its segments fetched.
	// It returns model.ErrNoCaptions when the video has no tracks, and
	// wraps model.ErrCaptionsUnavailable for transport or parse failures.
	ListTracks(ctx context.Context, videoID string) ([]model.CaptionTrack, error)
}

// captionsClient scrapes the caption track list from the watch page's player
// response and fetches each track's timedtext XML. This is the same source
// the platform's own player uses, so no API quota is spent.
type captionsClient struct {
	baseURL string
	httpc   *http.Client
}

// NewCaptionsClient creates the default captions client.
func NewCaptionsClient() CaptionsClient {
	return &captionsClient{
		baseURL: "https://www.youtube.com",
		httpc:   &http.Client{Timeout: 20 * time.Second},
	}
}

// NewCaptionsClientWithBaseURL is used by tests to point at a fake server.
func NewCaptionsClientWithBaseURL(baseURL string) CaptionsClient {
	return &captionsClient{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: 20 * time.Second},
	}
}

// captionTrackMeta is one entry of the player response's captionTracks array.
type captionTrackMeta struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" marks auto-generated tracks
}

func (c *captionsClient) ListTracks(ctx context.Context, videoID string) ([]model.CaptionTrack, error) {
	page, err := c.fetchWatchPage(ctx, videoID)
	if err != nil {
		return nil, err
	}

	metas, err := extractCaptionTracks(page)
	if err != nil {
		return nil, err
	}
	if len(metas) == 0 {
		return nil, fmt.Errorf("%w: %s", model.ErrNoCaptions, videoID)
	}

	tracks := make([]model.CaptionTrack, 0, len(metas))
	for _, meta := range metas {
		segments, err := c.fetchTimedText(ctx, meta.BaseURL)
		if err != nil {
			return nil, err
		}
		tracks = append(tracks, model.CaptionTrack{
			LanguageCode: meta.LanguageCode,
			IsGenerated:  meta.Kind == "asr",
			Segments:     segments,
		})
	}
	return tracks, nil
}

func (c *captionsClient) fetchWatchPage(ctx context.Context, videoID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/watch?v="+videoID, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept-Language", "en-US,en")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrCaptionsUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: watch page status %d", model.ErrCaptionsUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrCaptionsUnavailable, err)
	}
	return string(body), nil
}

// extractCaptionTracks locates the "captionTracks" array embedded in the
// watch page's player response JSON and unmarshals it. A page without the
// marker is a video without captions, not a parse failure.
func extractCaptionTracks(page string) ([]captionTrackMeta, error) {
	const marker = `"captionTracks":`
	idx := strings.Index(page, marker)
	if idx < 0 {
		return nil, nil
	}

	rest := page[idx+len(marker):]
	end := balancedArrayEnd(rest)
	if end < 0 {
		return nil, fmt.Errorf("%w: unterminated captionTracks array", model.ErrCaptionsUnavailable)
	}

	var metas []captionTrackMeta
	if err := json.Unmarshal([]byte(rest[:end]), &metas); err != nil {
		return nil, fmt.Errorf("%w: captionTracks: %v", model.ErrCaptionsUnavailable, err)
	}
	return metas, nil
}

// balancedArrayEnd returns the index just past the JSON array starting at
// s[0], honoring string escapes, or -1 if the array never closes.
func balancedArrayEnd(s string) int {
	if len(s) == 0 || s[0] != '[' {
		return -1
	}
	depth := 0
	inString := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if inString {
			switch ch {
			case '\\':
				i++
			case '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
	}
	return -1
}

// timedText is the XML body served by a caption track's base URL.
type timedText struct {
	XMLName xml.Name `xml:"transcript"`
	Texts   []struct {
		Start float64 `xml:"start,attr"`
		Dur   float64 `xml:"dur,attr"`
		Body  string  `xml:",chardata"`
	} `xml:"text"`
}

func (c *captionsClient) fetchTimedText(ctx context.Context, trackURL string) ([]model.Segment, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, trackURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCaptionsUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: timedtext status %d", model.ErrCaptionsUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrCaptionsUnavailable, err)
	}

	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return nil, fmt.Errorf("%w: timedtext: %v", model.ErrCaptionsUnavailable, err)
	}

	segments := make([]model.Segment, 0, len(tt.Texts))
	for _, txt := range tt.Texts {
		text := strings.TrimSpace(html.UnescapeString(txt.Body))
		if text == "" {
			continue
		}
		segments = append(segments, model.Segment{
			Text:     text,
			Start:    txt.Start,
			Duration: txt.Dur,
		})
	}
	return segments, nil
}
