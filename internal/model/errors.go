package model

import "errors"

// Domain errors, wrapped with %w at call sites and mapped to API error
// codes in the handlers.
var (
	// ErrInvalidVideoURL indicates the submitted link could not be parsed
	// into an 11-character YouTube video ID.
	ErrInvalidVideoURL = errors.New("could not parse YouTube URL")

	// ErrVideoNotFound indicates the Data API returned no item for the ID.
	ErrVideoNotFound = errors.New("video not found")

	// ErrNoCaptions indicates the captions service answered but the video
	// has no caption tracks at all.
	ErrNoCaptions = errors.New("no captions available")

	// ErrCaptionsUnavailable indicates the captions service could not be
	// reached or its response could not be parsed. Distinct from
	// ErrNoCaptions so outages are surfaced instead of masked.
	ErrCaptionsUnavailable = errors.New("captions service unavailable")

	// ErrNoTranscript indicates only the placeholder row exists, so there
	// is no usable transcript text for this video.
	ErrNoTranscript = errors.New("no transcript available")

	// ErrNoContext indicates the transcript produced zero chunks, so no
	// context can be selected for answering.
	ErrNoContext = errors.New("no context chunks to score")

	// ErrAcquireLoop indicates the transcript state machine failed to reach
	// a terminal cached state within its pass budget.
	ErrAcquireLoop = errors.New("transcript acquisition did not converge")

	// ErrAcquireInProgress indicates another request holds the acquisition
	// lock for this video and nothing is cached yet.
	ErrAcquireInProgress = errors.New("transcript acquisition in progress")

	// ErrAIUnavailable indicates the embedding or completion backend
	// failed or returned an unusable response.
	ErrAIUnavailable = errors.New("ai backend unavailable")
)
