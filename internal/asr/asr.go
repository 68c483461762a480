// Package asr wraps the speech-to-text backends used when a video has no
// usable caption track: the hosted Whisper API or a local whisper.cpp
// binary, selected by configuration.
package asr

import (
	"context"

	"github.com/theuerc/riddle-me-this/internal/model"
)

// Transcriber converts an audio file into transcript text plus timed
// segments. Implementations tag nothing; the caller persists the result
// under the reserved whisper language code.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (text string, segments []model.Segment, err error)
}
