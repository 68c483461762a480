package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/theuerc/riddle-me-this/internal/model"
)

// TranscriptRepo persists caption tracks and speech-to-text results.
// The transcripts table carries a composite unique index on
// (video_id, language_code, is_generated); duplicate inserts are no-ops.
type TranscriptRepo struct {
	pool *pgxpool.Pool
}

func NewTranscriptRepo(pool *pgxpool.Pool) *TranscriptRepo {
	return &TranscriptRepo{pool: pool}
}

const transcriptColumns = `id, video_id, raw_json, text, language_code, is_generated, created_at`

func scanTranscript(row pgx.Row) (*model.Transcript, error) {
	var t model.Transcript
	var rawJSON []byte
	err := row.Scan(&t.ID, &t.VideoID, &rawJSON, &t.Text, &t.LanguageCode, &t.IsGenerated, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(rawJSON) > 0 {
		if err := json.Unmarshal(rawJSON, &t.Segments); err != nil {
			return nil, fmt.Errorf("transcript %d: decode segments: %w", t.ID, err)
		}
	}
	return &t, nil
}

// FindHuman returns the human-provided track for (video, language), or nil.
func (r *TranscriptRepo) FindHuman(ctx context.Context, videoID, language string) (*model.Transcript, error) {
	query := `SELECT ` + transcriptColumns + `
		FROM transcripts
		WHERE video_id = $1 AND language_code = $2 AND is_generated = false
		ORDER BY id LIMIT 1`
	return scanTranscript(r.pool.QueryRow(ctx, query, videoID, language))
}

// FindWhisper returns the speech-to-text row for a video, or nil.
func (r *TranscriptRepo) FindWhisper(ctx context.Context, videoID string) (*model.Transcript, error) {
	query := `SELECT ` + transcriptColumns + `
		FROM transcripts
		WHERE video_id = $1 AND language_code = $2
		ORDER BY id LIMIT 1`
	return scanTranscript(r.pool.QueryRow(ctx, query, videoID, model.WhisperLanguageCode))
}

// FindGenerated returns the auto-generated caption row for (video, language),
// or nil.
func (r *TranscriptRepo) FindGenerated(ctx context.Context, videoID, language string) (*model.Transcript, error) {
	query := `SELECT ` + transcriptColumns + `
		FROM transcripts
		WHERE video_id = $1 AND language_code = $2 AND is_generated = true
		ORDER BY id LIMIT 1`
	return scanTranscript(r.pool.QueryRow(ctx, query, videoID, language))
}

// Insert persists one transcript row. The composite unique index makes a
// duplicate (video, language, generated) insert a silent no-op.
func (r *TranscriptRepo) Insert(ctx context.Context, t *model.Transcript) error {
	rawJSON, err := json.Marshal(t.Segments)
	if err != nil {
		return fmt.Errorf("encode segments: %w", err)
	}

	query := `
		INSERT INTO transcripts (video_id, raw_json, text, language_code, is_generated, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (video_id, language_code, is_generated) DO NOTHING`

	_, err = r.pool.Exec(ctx, query, t.VideoID, rawJSON, t.Text, t.LanguageCode, t.IsGenerated)
	return err
}

// ListByVideo returns every transcript row for a video in insert order.
func (r *TranscriptRepo) ListByVideo(ctx context.Context, videoID string) ([]model.Transcript, error) {
	query := `SELECT ` + transcriptColumns + `
		FROM transcripts
		WHERE video_id = $1
		ORDER BY id`

	rows, err := r.pool.Query(ctx, query, videoID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Transcript
	for rows.Next() {
		t, err := scanTranscript(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Stats returns aggregate transcript counters for the stats endpoint.
func (r *TranscriptRepo) Stats(ctx context.Context) (*model.StatsResponse, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_generated = false AND language_code <> $1),
			COUNT(*) FILTER (WHERE language_code = $1),
			COUNT(*) FILTER (WHERE text = $2)
		FROM transcripts`

	var s model.StatsResponse
	err := r.pool.QueryRow(ctx, query, model.WhisperLanguageCode, model.PlaceholderText).Scan(
		&s.Transcripts, &s.HumanTranscripts, &s.WhisperTranscripts, &s.Placeholders,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
