package asr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/theuerc/riddle-me-this/internal/model"
)

// RemoteWhisper sends raw audio bytes to the hosted transcription API
// (whisper-1). The response is plain text; the single segment returned
// covers the whole recording, matching what the API gives us.
type RemoteWhisper struct {
	apiKey  string
	baseURL string
	model   string
	httpc   *http.Client
}

func NewRemoteWhisper(apiKey, baseURL string) *RemoteWhisper {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &RemoteWhisper{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   "whisper-1",
		// Transcribing an hour of audio takes a while.
		httpc: &http.Client{Timeout: 10 * time.Minute},
	}
}

func (w *RemoteWhisper) Transcribe(ctx context.Context, audioPath string) (string, []model.Segment, error) {
	audio, err := os.ReadFile(audioPath)
	if err != nil {
		return "", nil, fmt.Errorf("read audio: %w", err)
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", nil, err
	}
	if _, err := part.Write(audio); err != nil {
		return "", nil, err
	}
	if err := mw.WriteField("model", w.model); err != nil {
		return "", nil, err
	}
	if err := mw.Close(); err != nil {
		return "", nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.baseURL+"/audio/transcriptions", &body)
	if err != nil {
		return "", nil, err
	}
	req.Header.Set("Authorization", "Bearer "+w.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := w.httpc.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("transcription api: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, fmt.Errorf("transcription api: read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", nil, fmt.Errorf("transcription api: status %d: %s", resp.StatusCode, respBody)
	}

	var out struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(respBody, &out); err != nil {
		return "", nil, fmt.Errorf("transcription api: decode: %w", err)
	}

	text := strings.TrimSpace(out.Text)
	return text, []model.Segment{{Text: text}}, nil
}
