package asr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/theuerc/riddle-me-this/internal/model"
)

// LocalWhisper runs a whisper.cpp CLI binary against the audio file and
// parses its JSON output. No network, no per-minute billing; slower on
// machines without a GPU.
type LocalWhisper struct {
	Bin       string // e.g. "whisper-cli"
	ModelPath string // ggml model file; empty lets the binary pick its default
}

func NewLocalWhisper(bin, modelPath string) *LocalWhisper {
	return &LocalWhisper{Bin: bin, ModelPath: modelPath}
}

// whisperOutput matches whisper.cpp's --output-json document.
type whisperOutput struct {
	Transcription []struct {
		Text    string `json:"text"`
		Offsets struct {
			From int64 `json:"from"` // milliseconds
			To   int64 `json:"to"`
		} `json:"offsets"`
	} `json:"transcription"`
}

func (w *LocalWhisper) Transcribe(ctx context.Context, audioPath string) (string, []model.Segment, error) {
	outBase := audioPath + ".whisper"
	args := []string{
		"--file", audioPath,
		"--language", "en",
		"--output-json",
		"--output-file", outBase,
		"--no-prints",
	}
	if w.ModelPath != "" {
		args = append(args, "--model", w.ModelPath)
	}

	cmd := exec.CommandContext(ctx, w.Bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", nil, fmt.Errorf("whisper: %w: %s", err, stderr.String())
	}

	jsonPath := outBase + ".json"
	defer os.Remove(jsonPath)

	raw, err := os.ReadFile(jsonPath)
	if err != nil {
		return "", nil, fmt.Errorf("whisper: read output: %w", err)
	}

	var out whisperOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", nil, fmt.Errorf("whisper: decode output: %w", err)
	}

	segments := make([]model.Segment, 0, len(out.Transcription))
	var sb strings.Builder
	for _, seg := range out.Transcription {
		text := strings.TrimSpace(seg.Text)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(text)
		segments = append(segments, model.Segment{
			Text:     text,
			Start:    float64(seg.Offsets.From) / 1000,
			Duration: float64(seg.Offsets.To-seg.Offsets.From) / 1000,
		})
	}
	return sb.String(), segments, nil
}
