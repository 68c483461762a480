package youtube

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/theuerc/riddle-me-this/internal/model"
)

const sampleTimedText = `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.12" dur="2.5">Hello &amp; welcome</text>
  <text start="2.62" dur="3.1">to the show</text>
  <text start="5.72" dur="1.0">  </text>
</transcript>`

func newCaptionsServer(t *testing.T, tracksJSON string) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var srv *httptest.Server
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		if tracksJSON == "" {
			fmt.Fprint(w, `<html>var ytInitialPlayerResponse = {"videoDetails":{}};</html>`)
			return
		}
		fmt.Fprintf(w, `<html>var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":%s}}};</html>`, tracksJSON)
	})
	mux.HandleFunc("/timedtext", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleTimedText)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestListTracks(t *testing.T) {
	var srv *httptest.Server
	tracks := func() string {
		return fmt.Sprintf(`[{"baseUrl":"%s/timedtext?lang=en","languageCode":"en","kind":""},{"baseUrl":"%s/timedtext?lang=en&kind=asr","languageCode":"en","kind":"asr"}]`, srv.URL, srv.URL)
	}

	// The track JSON embeds the server's own URL, so build the server first
	// with a placeholder and patch the handler via closure.
	mux := http.NewServeMux()
	srv = httptest.NewServer(mux)
	defer srv.Close()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html>{"captionTracks":%s}</html>`, tracks())
	})
	mux.HandleFunc("/timedtext", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, sampleTimedText)
	})

	client := NewCaptionsClientWithBaseURL(srv.URL)
	got, err := client.ListTracks(context.Background(), "dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("track count = %d, want 2", len(got))
	}
	if got[0].IsGenerated || !got[1].IsGenerated {
		t.Errorf("generated flags = %v/%v, want false/true", got[0].IsGenerated, got[1].IsGenerated)
	}
	// Blank segment is dropped, entities unescaped.
	if len(got[0].Segments) != 2 {
		t.Fatalf("segment count = %d, want 2", len(got[0].Segments))
	}
	if got[0].Segments[0].Text != "Hello & welcome" {
		t.Errorf("segment text = %q", got[0].Segments[0].Text)
	}
	if got[0].JoinedText() != "Hello & welcome to the show" {
		t.Errorf("joined text = %q", got[0].JoinedText())
	}
}

func TestListTracks_NoCaptions(t *testing.T) {
	srv := newCaptionsServer(t, "")
	client := NewCaptionsClientWithBaseURL(srv.URL)

	_, err := client.ListTracks(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, model.ErrNoCaptions) {
		t.Errorf("error = %v, want ErrNoCaptions", err)
	}
}

func TestListTracks_ServiceDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewCaptionsClientWithBaseURL(srv.URL)
	_, err := client.ListTracks(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, model.ErrCaptionsUnavailable) {
		t.Errorf("error = %v, want ErrCaptionsUnavailable", err)
	}
}

func TestExtractCaptionTracks_Malformed(t *testing.T) {
	_, err := extractCaptionTracks(`prefix "captionTracks":[{"baseUrl":"x"`)
	if !errors.Is(err, model.ErrCaptionsUnavailable) {
		t.Errorf("error = %v, want ErrCaptionsUnavailable", err)
	}
}

func TestBalancedArrayEnd(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{`[]`, 2},
		{`[1,2,3] trailing`, 7},
		{`[{"a":"br]acket"}]x`, 18},
		{`[{"a":"esc\"]ape"}]`, 19},
		{`[[1],[2]]`, 9},
		{`[unterminated`, -1},
		{`not an array`, -1},
	}
	for _, tt := range tests {
		if got := balancedArrayEnd(tt.in); got != tt.want {
			t.Errorf("balancedArrayEnd(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
