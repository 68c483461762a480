package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/theuerc/riddle-me-this/internal/asr"
	"github.com/theuerc/riddle-me-this/internal/media"
	"github.com/theuerc/riddle-me-this/internal/metrics"
	"github.com/theuerc/riddle-me-this/internal/model"
	"github.com/theuerc/riddle-me-this/internal/youtube"
)

// maxAcquirePasses bounds the lookup/acquire loop. Each acquisition pass
// leaves a persisted row behind, so two passes suffice when every store
// write lands; a third absorbs a lost race with a concurrent writer.
const maxAcquirePasses = 3

// TranscriptStore is the persistence surface the transcript service needs.
type TranscriptStore interface {
	FindHuman(ctx context.Context, videoID, language string) (*model.Transcript, error)
	FindWhisper(ctx context.Context, videoID string) (*model.Transcript, error)
	FindGenerated(ctx context.Context, videoID, language string) (*model.Transcript, error)
	Insert(ctx context.Context, t *model.Transcript) error
	ListByVideo(ctx context.Context, videoID string) ([]model.Transcript, error)
	Stats(ctx context.Context) (*model.StatsResponse, error)
}

// TranscriptService resolves a transcript for (video, language) with a
// bounded acquire loop:
//
//	human caption row -> whisper row -> acquire (captions or audio) -> retry
//
// When nothing is cached it fetches every caption track and persists one
// row per track. When only a generated caption is cached it downloads the
// audio and synthesizes a whisper row. Captions outages surface as
// model.ErrCaptionsUnavailable instead of being written into the store.
type TranscriptService struct {
	repo        TranscriptStore
	captions    youtube.CaptionsClient
	downloader  media.Downloader
	transcriber asr.Transcriber
	cache       *CacheService
}

func NewTranscriptService(repo TranscriptStore, captions youtube.CaptionsClient, downloader media.Downloader, transcriber asr.Transcriber, cache *CacheService) *TranscriptService {
	return &TranscriptService{
		repo:        repo,
		captions:    captions,
		downloader:  downloader,
		transcriber: transcriber,
		cache:       cache,
	}
}

// Get returns the best transcript for videoID in language, acquiring one
// if the store has none. On concurrent acquisition of the same video the
// loser returns model.ErrAcquireInProgress and the caller retries later.
func (s *TranscriptService) Get(ctx context.Context, videoID, language string) (*model.Transcript, error) {
	if language == "" {
		language = "en"
	}

	if t, err := s.lookup(ctx, videoID, language); err != nil || t != nil {
		return t, err
	}

	locked, err := s.cache.AcquireLock(ctx, videoID)
	if err != nil {
		return nil, fmt.Errorf("acquire lock for %s: %w", videoID, err)
	}
	if !locked {
		// Another request is acquiring this video. Poll once in case it
		// already finished, otherwise report contention.
		if t, err := s.lookup(ctx, videoID, language); err != nil || t != nil {
			return t, err
		}
		metrics.TranscriptAcquisitions.WithLabelValues("in_progress").Inc()
		return nil, model.ErrAcquireInProgress
	}
	defer func() {
		if err := s.cache.ReleaseLock(context.WithoutCancel(ctx), videoID); err != nil {
			log.Printf("transcript %s: release lock: %v", videoID, err)
		}
	}()

	for pass := 0; pass < maxAcquirePasses; pass++ {
		t, err := s.lookup(ctx, videoID, language)
		if err != nil {
			return nil, err
		}
		if t != nil {
			return t, nil
		}

		generated, err := s.repo.FindGenerated(ctx, videoID, language)
		if err != nil {
			return nil, err
		}
		if generated == nil {
			if err := s.acquireCaptions(ctx, videoID, language); err != nil {
				return nil, err
			}
			continue
		}

		t, err = s.synthesize(ctx, videoID, generated)
		if err != nil {
			return nil, err
		}
		if t != nil {
			return t, nil
		}
	}

	metrics.TranscriptAcquisitions.WithLabelValues("loop").Inc()
	return nil, fmt.Errorf("video %s lang %s: %w", videoID, language, model.ErrAcquireLoop)
}

// lookup checks the two terminal states: a human caption row for the
// language, then a prior whisper row.
func (s *TranscriptService) lookup(ctx context.Context, videoID, language string) (*model.Transcript, error) {
	t, err := s.repo.FindHuman(ctx, videoID, language)
	if err != nil || t != nil {
		return t, err
	}
	return s.repo.FindWhisper(ctx, videoID)
}

// acquireCaptions fetches every caption track for the video and persists
// one row per track. A video with no captions at all gets a single
// placeholder row so retries skip the captions service. Outages do not
// write anything and surface to the caller.
func (s *TranscriptService) acquireCaptions(ctx context.Context, videoID, language string) error {
	start := time.Now()
	tracks, err := s.captions.ListTracks(ctx, videoID)
	metrics.ObserveCall("captions", start)

	if errors.Is(err, model.ErrNoCaptions) {
		log.Printf("transcript %s: no caption tracks, persisting placeholder", videoID)
		metrics.TranscriptAcquisitions.WithLabelValues("placeholder").Inc()
		return s.repo.Insert(ctx, &model.Transcript{
			VideoID:      videoID,
			Text:         model.PlaceholderText,
			LanguageCode: language,
			IsGenerated:  true,
		})
	}
	if err != nil {
		metrics.TranscriptAcquisitions.WithLabelValues("unavailable").Inc()
		return fmt.Errorf("video %s: %w", videoID, err)
	}

	for _, track := range tracks {
		text := track.JoinedText()
		if track.IsGenerated {
			text = normalizeGeneratedText(text)
		}
		t := &model.Transcript{
			VideoID:      videoID,
			Segments:     track.Segments,
			Text:         text,
			LanguageCode: track.LanguageCode,
			IsGenerated:  track.IsGenerated,
		}
		if err := s.repo.Insert(ctx, t); err != nil {
			return fmt.Errorf("persist %s track %s: %w", videoID, track.LanguageCode, err)
		}
	}
	log.Printf("transcript %s: persisted %d caption track(s)", videoID, len(tracks))
	metrics.TranscriptAcquisitions.WithLabelValues("captions").Inc()
	return nil
}

// synthesize runs the audio fallback: download the audio, transcribe it,
// persist the result under the whisper sentinel language. The audio file
// is removed whether or not transcription succeeds. Without a configured
// audio pipeline the generated caption row is returned as-is.
func (s *TranscriptService) synthesize(ctx context.Context, videoID string, generated *model.Transcript) (*model.Transcript, error) {
	if s.downloader == nil || s.transcriber == nil {
		log.Printf("transcript %s: audio pipeline not configured, serving generated captions", videoID)
		return generated, nil
	}

	start := time.Now()
	audioPath, err := s.downloader.DownloadAudio(ctx, youtube.WatchURL(videoID), videoID)
	metrics.ObserveCall("audio_download", start)
	if err != nil {
		return nil, fmt.Errorf("download audio for %s: %w", videoID, err)
	}
	defer func() {
		if err := os.Remove(audioPath); err != nil && !os.IsNotExist(err) {
			log.Printf("transcript %s: remove audio %s: %v", videoID, audioPath, err)
		}
	}()

	start = time.Now()
	text, segments, err := s.transcriber.Transcribe(ctx, audioPath)
	metrics.ObserveCall("transcription", start)
	if err != nil {
		return nil, fmt.Errorf("transcribe %s: %w", videoID, err)
	}

	t := &model.Transcript{
		VideoID:      videoID,
		Segments:     segments,
		Text:         text,
		LanguageCode: model.WhisperLanguageCode,
		IsGenerated:  false,
	}
	if err := s.repo.Insert(ctx, t); err != nil {
		return nil, fmt.Errorf("persist whisper row for %s: %w", videoID, err)
	}
	log.Printf("transcript %s: whisper transcription persisted (%d segment(s))", videoID, len(segments))
	metrics.TranscriptAcquisitions.WithLabelValues("whisper").Inc()
	return nil, nil
}

// List returns every stored transcript row for the video.
func (s *TranscriptService) List(ctx context.Context, videoID string) ([]model.Transcript, error) {
	return s.repo.ListByVideo(ctx, videoID)
}

// Stats returns store-wide aggregate counts.
func (s *TranscriptService) Stats(ctx context.Context) (*model.StatsResponse, error) {
	return s.repo.Stats(ctx)
}

var nonAlnumRun = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// normalizeGeneratedText collapses the punctuation-free, newline-ridden
// text of auto captions into single-space-separated tokens.
func normalizeGeneratedText(text string) string {
	return strings.TrimSpace(nonAlnumRun.ReplaceAllString(text, " "))
}
