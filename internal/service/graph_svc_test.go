package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theuerc/riddle-me-this/internal/model"
)

func TestExtractMentions(t *testing.T) {
	mentions := extractMentions("Yesterday Alice met Bob Smith in the New York subway.")
	var labels []string
	for _, m := range mentions {
		labels = append(labels, m.entity)
	}
	assert.Equal(t, []string{"Yesterday", "Alice", "Bob Smith", "New York"}, labels)

	// Runs keep the position of their first token.
	assert.Equal(t, 3, mentions[2].pos)
	assert.Equal(t, 7, mentions[3].pos)
}

func TestExtractMentions_StandaloneWordsDoNotMerge(t *testing.T) {
	cases := []struct {
		text string
		want []string
	}{
		{"Then Rick Astley waved", []string{"Then", "Rick Astley"}},
		{"Alice Today Bob", []string{"Alice", "Today", "Bob"}},
		{"Meanwhile However nothing", []string{"Meanwhile", "However"}},
	}
	for _, tc := range cases {
		var labels []string
		for _, m := range extractMentions(tc.text) {
			labels = append(labels, m.entity)
		}
		assert.Equal(t, tc.want, labels, "text: %s", tc.text)
	}
}

func TestBuildEntityGraph_CooccurrenceWindow(t *testing.T) {
	// Alice and Bob are adjacent; Zanzibar is far beyond the window.
	text := "Alice talked to Bob about everything. " +
		"then many plain lowercase words fill the gap between here and there " +
		"until finally Zanzibar appears."
	graph := BuildEntityGraph(text)

	var hasEdge bool
	for _, e := range graph.Edges {
		if (e.Source == "Alice" && e.Target == "Bob") || (e.Source == "Bob" && e.Target == "Alice") {
			hasEdge = true
			assert.GreaterOrEqual(t, e.Weight, 1.0)
		}
		assert.NotEqual(t, "Zanzibar", e.Source)
		assert.NotEqual(t, "Zanzibar", e.Target)
	}
	assert.True(t, hasEdge, "expected an Alice-Bob edge")
}

func TestBuildEntityGraph_MeanThresholdPrunes(t *testing.T) {
	// Alice co-occurs with everyone; Loner never co-occurs and scores
	// only the teleport baseline.
	text := "Alice met Bob today. Alice met Carol today. Alice met Dave today. " +
		"meanwhile nothing much else happened around town that afternoon Loner"
	graph := BuildEntityGraph(text)

	labels := map[string]bool{}
	for _, n := range graph.Nodes {
		labels[n.Label] = true
	}
	assert.True(t, labels["Alice"])
	assert.False(t, labels["Loner"])

	// Highest score first.
	require.NotEmpty(t, graph.Nodes)
	assert.Equal(t, "Alice", graph.Nodes[0].Label)
}

func TestBuildEntityGraph_NoEntities(t *testing.T) {
	graph := BuildEntityGraph("nothing but lowercase words here")
	assert.Empty(t, graph.Nodes)
	assert.Empty(t, graph.Edges)
}

func TestGraphService_Build(t *testing.T) {
	store := &fakeTranscriptStore{rows: []model.Transcript{
		{ID: 1, VideoID: "dQw4w9WgXcQ", Text: "Rick Astley sings while Rick Astley dances", LanguageCode: "en"},
	}}
	svc := NewGraphService(NewTranscriptService(store, &fakeCaptions{}, nil, nil, &CacheService{}))

	graph, err := svc.Build(context.Background(), "dQw4w9WgXcQ")
	require.NoError(t, err)
	assert.Equal(t, "dQw4w9WgXcQ", graph.VideoID)
	require.NotEmpty(t, graph.Nodes)
	assert.Equal(t, "Rick Astley", graph.Nodes[0].Label)
}

func TestGraphService_PlaceholderRejected(t *testing.T) {
	store := &fakeTranscriptStore{rows: []model.Transcript{
		{ID: 1, VideoID: "dQw4w9WgXcQ", Text: model.PlaceholderText, LanguageCode: "en", IsGenerated: true},
	}}
	svc := NewGraphService(NewTranscriptService(store, &fakeCaptions{}, nil, nil, &CacheService{}))

	_, err := svc.Build(context.Background(), "dQw4w9WgXcQ")
	assert.ErrorIs(t, err, model.ErrNoTranscript)
}
