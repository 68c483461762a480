package model

import "time"

// WhisperLanguageCode is the reserved language-code sentinel tagging rows
// produced by speech-to-text rather than platform captions.
const WhisperLanguageCode = "en-whisper"

// PlaceholderText is persisted when the captions service reports that a video
// has no caption tracks at all, so later requests do not re-hit the service.
const PlaceholderText = "This is fake text"

// Segment is one timed piece of a transcript.
type Segment struct {
	Text     string  `json:"text"`
	Start    float64 `json:"start,omitempty"`
	Duration float64 `json:"duration,omitempty"`
}

// Transcript is one caption track (or speech-to-text result) for a video.
// Uniqueness is enforced on (video_id, language_code, is_generated).
type Transcript struct {
	ID           int64     `json:"id"`
	VideoID      string    `json:"videoId"`
	Segments     []Segment `json:"segments,omitempty"`
	Text         string    `json:"text"`
	LanguageCode string    `json:"languageCode"`
	IsGenerated  bool      `json:"isGenerated"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsWhisper reports whether the row was produced by speech-to-text.
func (t *Transcript) IsWhisper() bool {
	return t.LanguageCode == WhisperLanguageCode
}

// IsPlaceholder reports whether the row is the no-captions marker.
func (t *Transcript) IsPlaceholder() bool {
	return t.Text == PlaceholderText
}

// CaptionTrack is a single track returned by the captions service before it
// is persisted: the language, whether the platform auto-generated it, and the
// fetched timed segments.
type CaptionTrack struct {
	LanguageCode string
	IsGenerated  bool
	Segments     []Segment
}

// JoinedText concatenates the track's segment texts with single spaces.
func (c CaptionTrack) JoinedText() string {
	total := 0
	for _, s := range c.Segments {
		total += len(s.Text) + 1
	}
	buf := make([]byte, 0, total)
	for i, s := range c.Segments {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, s.Text...)
	}
	return string(buf)
}
