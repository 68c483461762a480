package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theuerc/riddle-me-this/internal/model"
)

// fakeEmbedder maps each input string to a fixed vector.
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fakeEmbedder) Embed(_ context.Context, inputs []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(inputs))
	for i, in := range inputs {
		out[i] = f.vectors[in]
	}
	return out, nil
}

func (f *fakeEmbedder) EmbedQuery(ctx context.Context, input string) ([]float32, error) {
	vs, err := f.Embed(ctx, []string{input})
	if err != nil {
		return nil, err
	}
	return vs[0], nil
}

func (f *fakeEmbedder) Close() error { return nil }

func TestContextService_SelectsHighestScore(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float32{
		"cats purr":        {1, 0, 0},
		"dogs bark":        {0, 1, 0},
		"fish swim":        {0, 0, 1},
		"why do dogs bark": {0.1, 0.9, 0},
	}}
	svc := NewContextService(emb)

	best, err := svc.Select(context.Background(), "why do dogs bark",
		[]string{"cats purr", "dogs bark", "fish swim"})
	require.NoError(t, err)
	assert.Equal(t, 1, best.Index)
	assert.Equal(t, "dogs bark", best.Text)
	assert.Equal(t, 1, emb.calls)
}

func TestContextService_TieGoesToFirstIndex(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float32{
		"a": {1, 0},
		"b": {2, 0}, // same direction, same cosine
		"q": {3, 0},
	}}
	svc := NewContextService(emb)

	best, err := svc.Select(context.Background(), "q", []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, 0, best.Index)
}

func TestContextService_EmptyChunksIsCallerError(t *testing.T) {
	svc := NewContextService(&fakeEmbedder{})
	_, err := svc.Select(context.Background(), "q", nil)
	assert.ErrorIs(t, err, model.ErrNoContext)
}

func TestContextService_EmbedderFailurePropagates(t *testing.T) {
	svc := NewContextService(&fakeEmbedder{err: errors.New("quota exceeded")})
	_, err := svc.Select(context.Background(), "q", []string{"chunk"})
	assert.Error(t, err)
}

func TestCosineSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, CosineSimilarity([]float32{1, 2, 3}, []float32{2, 4, 6}), 1e-9)
	assert.InDelta(t, 0.0, CosineSimilarity([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, CosineSimilarity([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Zero(t, CosineSimilarity(nil, nil))
	assert.Zero(t, CosineSimilarity([]float32{0, 0}, []float32{1, 1}))
	assert.Zero(t, CosineSimilarity([]float32{1}, []float32{1, 2}))
}
