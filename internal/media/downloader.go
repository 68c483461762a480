package media

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// Downloader produces a local audio file for a video URL.
type Downloader interface {
	// DownloadAudio fetches the best audio stream for url, transcodes it to
	// the configured codec/quality and returns the resulting file path
	// (<dir>/<videoID>.<codec>).
	DownloadAudio(ctx context.Context, url, videoID string) (string, error)
}

// YTDLPDownloader shells out to yt-dlp with an FFmpeg audio-extract
// postprocessor, the same pipeline the platform tooling expects.
type YTDLPDownloader struct {
	Bin     string // yt-dlp binary, default "yt-dlp"
	Dir     string // scratch directory for audio files
	Codec   string // e.g. "mp3"
	Quality string // FFmpeg audio quality, e.g. "64"
}

func NewYTDLPDownloader(dir, codec, quality string) *YTDLPDownloader {
	return &YTDLPDownloader{
		Bin:     "yt-dlp",
		Dir:     dir,
		Codec:   codec,
		Quality: quality,
	}
}

func (d *YTDLPDownloader) DownloadAudio(ctx context.Context, url, videoID string) (string, error) {
	outTemplate := filepath.Join(d.Dir, "%(id)s.%(ext)s")

	cmd := exec.CommandContext(ctx, d.Bin,
		"--format", "bestaudio/best",
		"--extract-audio",
		"--audio-format", d.Codec,
		"--audio-quality", d.Quality,
		"--output", outTemplate,
		"--no-progress",
		url,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("yt-dlp: %w: %s", err, stderr.String())
	}

	path := filepath.Join(d.Dir, videoID+"."+d.Codec)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("yt-dlp: expected output missing: %w", err)
	}
	return path, nil
}
