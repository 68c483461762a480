package model

// QuestionRequest is the POST /api/questions body. Exactly one of VideoURL
// or VideoID must be set.
type QuestionRequest struct {
	VideoURL string `json:"videoUrl,omitempty"`
	VideoID  string `json:"videoId,omitempty"`
	Question string `json:"question"`
	Language string `json:"lang,omitempty"`
}

// Answer is the response to a question: the model's text plus the transcript
// chunk it was grounded on.
type Answer struct {
	VideoID      string  `json:"videoId"`
	Question     string  `json:"question"`
	Text         string  `json:"answer"`
	Context      string  `json:"context"`
	ContextIndex int     `json:"contextIndex"`
	Similarity   float64 `json:"similarity"`
	Cached       bool    `json:"cached,omitempty"`
}

// ScoredChunk pairs a transcript chunk with its similarity to the query.
type ScoredChunk struct {
	Index int     `json:"index"`
	Text  string  `json:"text"`
	Score float64 `json:"score"`
}

// StatsResponse is the aggregate counters served by GET /api/stats.
type StatsResponse struct {
	Videos             int64 `json:"videos"`
	Transcripts        int64 `json:"transcripts"`
	HumanTranscripts   int64 `json:"humanTranscripts"`
	WhisperTranscripts int64 `json:"whisperTranscripts"`
	Placeholders       int64 `json:"placeholders"`
}
