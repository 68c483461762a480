package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/theuerc/riddle-me-this/internal/ai"
	"github.com/theuerc/riddle-me-this/internal/metrics"
	"github.com/theuerc/riddle-me-this/internal/model"
	"github.com/theuerc/riddle-me-this/pkg/hash"
	"github.com/theuerc/riddle-me-this/pkg/textsplit"
)

// answerPrompt is the fixed template for grounded answers. The model is
// told to stay inside the supplied context and decline otherwise.
const answerPrompt = `Use only the context below to answer the question. If the context does not contain the information needed, politely say that you cannot answer from this video's transcript.

Context:
%s

Question: %s

Answer:`

// QAService answers questions about a video from its transcript. It
// resolves the video, obtains a transcript, splits it into word-budget
// chunks, picks the best chunk by embedding similarity and asks the
// completion model for a grounded answer. Answers are cached by
// (video, language, question hash).
type QAService struct {
	videos      *VideoService
	transcripts *TranscriptService
	contexts    *ContextService
	completion  ai.CompletionClient
	cache       *CacheService
	chunkWords  int
}

func NewQAService(videos *VideoService, transcripts *TranscriptService, contexts *ContextService, completion ai.CompletionClient, cache *CacheService, chunkWords int) *QAService {
	if chunkWords <= 0 {
		chunkWords = textsplit.DefaultChunkWords
	}
	return &QAService{
		videos:      videos,
		transcripts: transcripts,
		contexts:    contexts,
		completion:  completion,
		cache:       cache,
		chunkWords:  chunkWords,
	}
}

// Answer runs the full question pipeline for the request.
func (s *QAService) Answer(ctx context.Context, req *model.QuestionRequest) (*model.Answer, error) {
	videoID := req.VideoID
	if videoID == "" {
		var err error
		videoID, err = s.videos.Resolve(req.VideoURL)
		if err != nil {
			return nil, err
		}
	} else if _, err := s.videos.Resolve(videoID); err != nil {
		return nil, err
	}

	language := req.Language
	if language == "" {
		language = "en"
	}

	key := hash.AnswerKey(videoID, language, req.Question)
	if data, err := s.cache.Get(ctx, key); err == nil && data != nil {
		var answer model.Answer
		if err := json.Unmarshal(data, &answer); err == nil {
			answer.Cached = true
			metrics.QuestionsAnswered.WithLabelValues("cached").Inc()
			return &answer, nil
		}
		_ = s.cache.Invalidate(ctx, key)
	}

	transcript, err := s.transcripts.Get(ctx, videoID, language)
	if err != nil {
		metrics.QuestionsAnswered.WithLabelValues("error").Inc()
		return nil, err
	}
	if transcript.IsPlaceholder() {
		metrics.QuestionsAnswered.WithLabelValues("no_transcript").Inc()
		return nil, fmt.Errorf("video %s: %w", videoID, model.ErrNoTranscript)
	}

	chunks := textsplit.Split(transcript.Text, s.chunkWords)
	if len(chunks) == 0 {
		metrics.QuestionsAnswered.WithLabelValues("no_context").Inc()
		return nil, fmt.Errorf("video %s: %w", videoID, model.ErrNoContext)
	}

	best, err := s.contexts.Select(ctx, req.Question, chunks)
	if err != nil {
		metrics.QuestionsAnswered.WithLabelValues("error").Inc()
		return nil, err
	}

	start := time.Now()
	text, err := s.completion.Complete(ctx, fmt.Sprintf(answerPrompt, best.Text, req.Question), ai.AnswerTemperature)
	metrics.ObserveCall("completion", start)
	if err != nil {
		metrics.QuestionsAnswered.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("complete answer for %s: %w: %v", videoID, model.ErrAIUnavailable, err)
	}

	answer := &model.Answer{
		VideoID:      videoID,
		Question:     req.Question,
		Text:         text,
		Context:      best.Text,
		ContextIndex: best.Index,
		Similarity:   best.Score,
	}
	if err := s.cache.Set(ctx, key, answer, AnswerCacheTTL); err != nil {
		log.Printf("qa %s: answer cache write failed: %v", videoID, err)
	}
	metrics.QuestionsAnswered.WithLabelValues("ok").Inc()
	return answer, nil
}
