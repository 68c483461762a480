package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/theuerc/riddle-me-this/internal/ai"
	"github.com/theuerc/riddle-me-this/internal/metrics"
	"github.com/theuerc/riddle-me-this/internal/model"
)

// ContextService scores transcript chunks against a question and picks
// the best-matching one. Chunks and the question are embedded in a single
// batch, the question last.
type ContextService struct {
	embedder ai.Embedder
}

func NewContextService(embedder ai.Embedder) *ContextService {
	return &ContextService{embedder: embedder}
}

// Select returns the highest-scoring chunk for the question. Ties go to
// the earliest chunk. An empty chunk slice is a caller error.
func (s *ContextService) Select(ctx context.Context, question string, chunks []string) (*model.ScoredChunk, error) {
	if len(chunks) == 0 {
		return nil, model.ErrNoContext
	}

	inputs := make([]string, 0, len(chunks)+1)
	inputs = append(inputs, chunks...)
	inputs = append(inputs, question)

	start := time.Now()
	vectors, err := s.embedder.Embed(ctx, inputs)
	metrics.ObserveCall("embedding", start)
	if err != nil {
		return nil, fmt.Errorf("embed %d chunk(s): %w: %v", len(chunks), model.ErrAIUnavailable, err)
	}
	if len(vectors) != len(inputs) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(vectors), len(inputs))
	}

	query := vectors[len(vectors)-1]
	best := model.ScoredChunk{Index: 0, Text: chunks[0], Score: CosineSimilarity(query, vectors[0])}
	for i := 1; i < len(chunks); i++ {
		score := CosineSimilarity(query, vectors[i])
		if score > best.Score {
			best = model.ScoredChunk{Index: i, Text: chunks[i], Score: score}
		}
	}
	return &best, nil
}

// Score returns one similarity score per chunk, in chunk order.
func (s *ContextService) Score(ctx context.Context, question string, chunks []string) ([]model.ScoredChunk, error) {
	if len(chunks) == 0 {
		return nil, model.ErrNoContext
	}

	inputs := append(append(make([]string, 0, len(chunks)+1), chunks...), question)
	vectors, err := s.embedder.Embed(ctx, inputs)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(inputs) {
		return nil, fmt.Errorf("embedding count mismatch: got %d, want %d", len(vectors), len(inputs))
	}

	query := vectors[len(vectors)-1]
	scored := make([]model.ScoredChunk, len(chunks))
	for i, chunk := range chunks {
		scored[i] = model.ScoredChunk{Index: i, Text: chunk, Score: CosineSimilarity(query, vectors[i])}
	}
	return scored, nil
}

// CosineSimilarity returns dot(a,b) / (|a| * |b|), or 0 when either
// vector is empty or zero.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
