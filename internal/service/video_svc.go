package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/theuerc/riddle-me-this/internal/model"
	"github.com/theuerc/riddle-me-this/internal/youtube"
)

// VideoStore is the persistence surface the video service needs.
type VideoStore interface {
	FindByVideoID(ctx context.Context, videoID string) (*model.Video, error)
	Insert(ctx context.Context, v *model.Video) error
	Count(ctx context.Context) (int64, error)
}

// MetadataFetcher fetches video metadata from the upstream data API.
type MetadataFetcher interface {
	VideoInfo(ctx context.Context, videoID string) (*model.Video, error)
}

// VideoService resolves video metadata with a cache -> database -> upstream
// lookup chain. Metadata is immutable once persisted; refreshes are not
// attempted.
type VideoService struct {
	repo    VideoStore
	fetcher MetadataFetcher
	cache   *CacheService
}

func NewVideoService(repo VideoStore, fetcher MetadataFetcher, cache *CacheService) *VideoService {
	return &VideoService{repo: repo, fetcher: fetcher, cache: cache}
}

// Get returns metadata for videoID, fetching and persisting it on first
// sight. Unknown IDs surface model.ErrVideoNotFound.
func (s *VideoService) Get(ctx context.Context, videoID string) (*model.Video, error) {
	if !youtube.ValidVideoID(videoID) {
		return nil, model.ErrInvalidVideoURL
	}

	key := VideoKey(videoID)
	if data, err := s.cache.Get(ctx, key); err == nil && data != nil {
		var v model.Video
		if err := json.Unmarshal(data, &v); err == nil {
			return &v, nil
		}
		// Stale or corrupt entry, fall through to the database.
		_ = s.cache.Invalidate(ctx, key)
	}

	v, err := s.repo.FindByVideoID(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if v == nil {
		v, err = s.fetcher.VideoInfo(ctx, videoID)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Insert(ctx, v); err != nil {
			return nil, err
		}
	}

	if err := s.cache.Set(ctx, key, v, VideoCacheTTL); err != nil {
		log.Printf("video %s: cache write failed: %v", videoID, err)
	}
	return v, nil
}

// Resolve accepts either a raw video ID or any supported video URL and
// returns the canonical 11-character ID.
func (s *VideoService) Resolve(rawURL string) (string, error) {
	if youtube.ValidVideoID(rawURL) {
		return rawURL, nil
	}
	return youtube.ParseVideoID(rawURL)
}
