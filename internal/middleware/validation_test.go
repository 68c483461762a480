package middleware

import (
	"strings"
	"testing"
)

func TestValidateVideoID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr bool
	}{
		{"valid", "dQw4w9WgXcQ", "dQw4w9WgXcQ", false},
		{"valid with dash underscore", "a-b_c-d_e-f", "a-b_c-d_e-f", false},
		{"trims whitespace", "  dQw4w9WgXcQ  ", "dQw4w9WgXcQ", false},
		{"empty", "", "", true},
		{"too short", "abc", "", true},
		{"too long", "dQw4w9WgXcQQ", "", true},
		{"invalid chars", "dQw4w9 WgXc", "", true},
		{"sql injection", "a'; DROP--x", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateVideoID(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.wantID {
				t.Errorf("got %q, want %q", got, tt.wantID)
			}
		})
	}
}

func TestValidateVideoURL(t *testing.T) {
	if _, errMsg := ValidateVideoURL(""); errMsg == "" {
		t.Error("empty url should be rejected")
	}
	if _, errMsg := ValidateVideoURL(strings.Repeat("x", 3000)); errMsg == "" {
		t.Error("oversized url should be rejected")
	}
	got, errMsg := ValidateVideoURL("  https://youtu.be/dQw4w9WgXcQ  ")
	if errMsg != "" {
		t.Errorf("unexpected error: %s", errMsg)
	}
	if got != "https://youtu.be/dQw4w9WgXcQ" {
		t.Errorf("trim failed: got %q", got)
	}
}

func TestValidateQuestion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"valid", "what is this video about?", "what is this video about?", false},
		{"trims", "  why?  ", "why?", false},
		{"empty", "", "", true},
		{"whitespace only", "   ", "", true},
		{"too long", strings.Repeat("a", 501), "", true},
		{"exactly max", strings.Repeat("a", 500), strings.Repeat("a", 500), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateQuestion(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateLanguage(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"defaults to en", "", "en", false},
		{"simple", "fr", "fr", false},
		{"region", "en-US", "en-US", false},
		{"whisper sentinel", "en-whisper", "en-whisper", false},
		{"uppercase base", "EN", "", true},
		{"garbage", "not a lang!", "", true},
		{"too long", "en-aaaaaaaaaaaaaaaaaa", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errMsg := ValidateLanguage(tt.input)
			if tt.wantErr && errMsg == "" {
				t.Errorf("expected error, got none")
			}
			if !tt.wantErr && errMsg != "" {
				t.Errorf("unexpected error: %s", errMsg)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
