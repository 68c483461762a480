package hash

import (
	"crypto/sha256"
	"encoding/hex"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// AnswerKey derives a stable cache key for an answered question. The raw
// question never appears in Redis keys.
func AnswerKey(videoID, language, question string) string {
	return "answer:" + videoID + ":" + language + ":" + SHA256Hex(question)[:16]
}
