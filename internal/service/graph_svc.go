package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/theuerc/riddle-me-this/internal/model"
)

const (
	// cooccurrenceWindow is the token distance within which two entity
	// mentions count as related.
	cooccurrenceWindow = 7

	pagerankDamping    = 0.85
	pagerankIterations = 50
	pagerankEpsilon    = 1e-6
)

// GraphService builds an entity relationship graph from a video's
// transcript: capitalized mentions become nodes, mentions within a short
// token window become weighted edges, and PageRank scores prune the graph
// to above-average entities.
type GraphService struct {
	transcripts *TranscriptService
}

func NewGraphService(transcripts *TranscriptService) *GraphService {
	return &GraphService{transcripts: transcripts}
}

// Build returns the pruned entity graph for videoID, acquiring a
// transcript first if none is cached.
func (s *GraphService) Build(ctx context.Context, videoID string) (*model.EntityGraph, error) {
	transcript, err := s.transcripts.Get(ctx, videoID, "en")
	if err != nil {
		return nil, err
	}
	if transcript.IsPlaceholder() {
		return nil, fmt.Errorf("video %s: %w", videoID, model.ErrNoTranscript)
	}

	graph := BuildEntityGraph(transcript.Text)
	graph.VideoID = videoID
	return graph, nil
}

// mention is one entity occurrence at a token position.
type mention struct {
	entity string
	pos    int
}

// BuildEntityGraph extracts capitalized entities from text, links mentions
// that fall within the co-occurrence window and keeps entities whose
// PageRank score is at or above the mean.
func BuildEntityGraph(text string) *model.EntityGraph {
	mentions := extractMentions(text)
	if len(mentions) == 0 {
		return &model.EntityGraph{Nodes: []model.GraphNode{}, Edges: []model.GraphEdge{}}
	}

	weights := map[[2]string]float64{}
	for i, a := range mentions {
		for j := i + 1; j < len(mentions); j++ {
			b := mentions[j]
			if b.pos-a.pos > cooccurrenceWindow {
				break
			}
			if a.entity == b.entity {
				continue
			}
			weights[edgeKey(a.entity, b.entity)]++
		}
	}

	scores := pagerank(weights, entitySet(mentions))

	var mean float64
	for _, s := range scores {
		mean += s
	}
	mean /= float64(len(scores))

	kept := map[string]bool{}
	var nodes []model.GraphNode
	for entity, score := range scores {
		if score >= mean {
			kept[entity] = true
			nodes = append(nodes, model.GraphNode{Label: entity, Score: score})
		}
	}
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Score != nodes[j].Score {
			return nodes[i].Score > nodes[j].Score
		}
		return nodes[i].Label < nodes[j].Label
	})

	var edges []model.GraphEdge
	for key, w := range weights {
		if kept[key[0]] && kept[key[1]] {
			edges = append(edges, model.GraphEdge{Source: key[0], Target: key[1], Weight: w})
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Source != edges[j].Source {
			return edges[i].Source < edges[j].Source
		}
		return edges[i].Target < edges[j].Target
	})

	if nodes == nil {
		nodes = []model.GraphNode{}
	}
	if edges == nil {
		edges = []model.GraphEdge{}
	}
	return &model.EntityGraph{Nodes: nodes, Edges: edges}
}

// standaloneCapWords are capitalized words that are usually sentence
// machinery rather than part of a name. They count as their own mention
// and never join a multiword run, so "Yesterday Alice" stays two
// mentions while "Bob Smith" merges.
var standaloneCapWords = map[string]bool{
	"The": true, "This": true, "That": true, "These": true, "Those": true,
	"There": true, "Then": true, "They": true, "But": true, "And": true,
	"Yesterday": true, "Today": true, "Tomorrow": true, "Now": true,
	"However": true, "Meanwhile": true, "Finally": true, "First": true,
	"When": true, "What": true, "Where": true, "Why": true, "How": true,
	"Here": true, "After": true, "Before": true, "During": true,
	"If": true, "So": true, "Also": true, "Well": true, "Because": true,
}

// extractMentions tokenizes text and treats runs of capitalized words as
// entity mentions. A run's position is that of its first token.
func extractMentions(text string) []mention {
	tokens := strings.Fields(text)
	var mentions []mention
	for i := 0; i < len(tokens); i++ {
		if !isCapitalizedWord(tokens[i]) {
			continue
		}
		start := i
		parts := []string{trimWord(tokens[i])}
		if !standaloneCapWords[parts[0]] {
			for i+1 < len(tokens) && isCapitalizedWord(tokens[i+1]) && !standaloneCapWords[trimWord(tokens[i+1])] {
				i++
				parts = append(parts, trimWord(tokens[i]))
			}
		}
		mentions = append(mentions, mention{entity: strings.Join(parts, " "), pos: start})
	}
	return mentions
}

func isCapitalizedWord(token string) bool {
	w := trimWord(token)
	if len(w) < 2 {
		return false
	}
	runes := []rune(w)
	if !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if !unicode.IsLetter(r) && r != '\'' && r != '-' {
			return false
		}
	}
	return true
}

func trimWord(token string) string {
	return strings.TrimFunc(token, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func edgeKey(a, b string) [2]string {
	if a > b {
		a, b = b, a
	}
	return [2]string{a, b}
}

func entitySet(mentions []mention) []string {
	seen := map[string]bool{}
	var out []string
	for _, m := range mentions {
		if !seen[m.entity] {
			seen[m.entity] = true
			out = append(out, m.entity)
		}
	}
	return out
}

// pagerank runs weighted power iteration over the undirected co-occurrence
// graph. Isolated entities keep the teleport baseline score.
func pagerank(weights map[[2]string]float64, entities []string) map[string]float64 {
	n := len(entities)
	if n == 0 {
		return map[string]float64{}
	}

	adj := map[string]map[string]float64{}
	outWeight := map[string]float64{}
	for key, w := range weights {
		a, b := key[0], key[1]
		if adj[a] == nil {
			adj[a] = map[string]float64{}
		}
		if adj[b] == nil {
			adj[b] = map[string]float64{}
		}
		adj[a][b] += w
		adj[b][a] += w
		outWeight[a] += w
		outWeight[b] += w
	}

	scores := make(map[string]float64, n)
	for _, e := range entities {
		scores[e] = 1.0 / float64(n)
	}

	base := (1 - pagerankDamping) / float64(n)
	for iter := 0; iter < pagerankIterations; iter++ {
		next := make(map[string]float64, n)
		for _, e := range entities {
			next[e] = base
		}
		for a, neighbors := range adj {
			share := scores[a] / outWeight[a]
			for b, w := range neighbors {
				next[b] += pagerankDamping * share * w
			}
		}

		var delta float64
		for e, s := range next {
			delta += math.Abs(s - scores[e])
		}
		scores = next
		if delta < pagerankEpsilon {
			break
		}
	}
	return scores
}
