package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theuerc/riddle-me-this/internal/model"
)

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

// FindByVideoID returns the stored metadata for a video, or nil when the
// video has not been seen yet.
func (r *VideoRepo) FindByVideoID(ctx context.Context, videoID string) (*model.Video, error) {
	query := `
		SELECT video_id, published_at, channel_id, title, description, channel_title,
		       category_id, thumbnail_url, definition, licensed_content,
		       upload_status, privacy_status, license, public_stats_viewable, made_for_kids,
		       view_count, like_count, favorite_count, comment_count, created_at
		FROM videos
		WHERE video_id = $1`

	var v model.Video
	err := r.pool.QueryRow(ctx, query, videoID).Scan(
		&v.VideoID, &v.PublishedAt, &v.ChannelID, &v.Title, &v.Description, &v.ChannelTitle,
		&v.CategoryID, &v.ThumbnailURL, &v.Definition, &v.LicensedContent,
		&v.UploadStatus, &v.PrivacyStatus, &v.License, &v.PublicStatsViewable, &v.MadeForKids,
		&v.ViewCount, &v.LikeCount, &v.FavoriteCount, &v.CommentCount, &v.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Insert persists video metadata. Videos are immutable after first insert,
// so an existing row wins any race.
func (r *VideoRepo) Insert(ctx context.Context, v *model.Video) error {
	query := `
		INSERT INTO videos (
			video_id, published_at, channel_id, title, description, channel_title,
			category_id, thumbnail_url, definition, licensed_content,
			upload_status, privacy_status, license, public_stats_viewable, made_for_kids,
			view_count, like_count, favorite_count, comment_count, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,NOW())
		ON CONFLICT (video_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query,
		v.VideoID, v.PublishedAt, v.ChannelID, v.Title, v.Description, v.ChannelTitle,
		v.CategoryID, v.ThumbnailURL, v.Definition, v.LicensedContent,
		v.UploadStatus, v.PrivacyStatus, v.License, v.PublicStatsViewable, v.MadeForKids,
		v.ViewCount, v.LikeCount, v.FavoriteCount, v.CommentCount,
	)
	return err
}

// Count returns the number of stored videos.
func (r *VideoRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM videos`).Scan(&n)
	return n, err
}
