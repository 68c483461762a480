package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// QuestionsAnswered counts answered questions by result (ok, cached,
	// no_transcript, no_context, error).
	QuestionsAnswered = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riddle_questions_answered_total",
		Help: "Questions processed, labelled by result.",
	}, []string{"result"})

	// TranscriptAcquisitions counts acquisition passes by outcome
	// (captions, placeholder, whisper, unavailable, in_progress, loop).
	TranscriptAcquisitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "riddle_transcript_acquisitions_total",
		Help: "Transcript acquisition attempts, labelled by outcome.",
	}, []string{"outcome"})

	// ExternalCallDuration times calls to external services
	// (captions, data_api, audio_download, transcription, embedding, completion).
	ExternalCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "riddle_external_call_duration_seconds",
		Help:    "Latency of outbound service calls.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	}, []string{"target"})
)

// ObserveCall records the duration of an external call started at t.
func ObserveCall(target string, t time.Time) {
	ExternalCallDuration.WithLabelValues(target).Observe(time.Since(t).Seconds())
}
