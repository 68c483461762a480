package middleware

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v3"
)

// Field limits matching database schema constraints.
const (
	VideoIDLen     = 11   // videos.video_id CHAR(11)
	MaxQuestionLen = 500  // questions are prompt material, keep them short
	MaxLanguageLen = 16   // transcripts.language_code VARCHAR(16)
	MaxVideoURLLen = 2048 // sane upper bound for a pasted URL
)

var (
	// videoIDRe matches YouTube video IDs: alphanumeric, dash, underscore.
	videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	// languageRe matches BCP-47-ish language codes plus the whisper sentinel.
	languageRe = regexp.MustCompile(`^[a-z]{2,3}(-[A-Za-z0-9]{1,8})*$`)
)

// ErrorResponse is a helper that returns a standard API error response.
func ErrorResponse(c fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

// ValidateVideoID checks that a video ID is exactly the canonical 11
// characters.
func ValidateVideoID(id string) (string, string) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", "videoId is required"
	}
	if !videoIDRe.MatchString(id) {
		return "", "videoId must be 11 characters of [A-Za-z0-9_-]"
	}
	return id, ""
}

// ValidateVideoURL bounds the raw URL; format parsing happens downstream.
func ValidateVideoURL(raw string) (string, string) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "url is required"
	}
	if len(raw) > MaxVideoURLLen {
		return "", "url is too long"
	}
	return raw, ""
}

// ValidateQuestion checks that the question is present and within limits.
func ValidateQuestion(q string) (string, string) {
	q = strings.TrimSpace(q)
	if q == "" {
		return "", "question is required"
	}
	if len(q) > MaxQuestionLen {
		return "", "question must be at most 500 characters"
	}
	return q, ""
}

// ValidateLanguage normalizes the language code, defaulting to "en".
func ValidateLanguage(lang string) (string, string) {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return "en", ""
	}
	if len(lang) > MaxLanguageLen || !languageRe.MatchString(lang) {
		return "", "lang must be a short language code like en or en-US"
	}
	return lang, ""
}
