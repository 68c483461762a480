package youtube

import (
	"fmt"
	"regexp"

	"github.com/theuerc/riddle-me-this/internal/model"
)

// videoURLRe accepts the common YouTube link shapes: watch?v=, youtu.be/,
// embed/, v/, u/<x>/ and bare &v= parameters. Group 2 is the candidate ID.
var videoURLRe = regexp.MustCompile(`^.*(youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

// videoIDRe matches a well-formed 11-character YouTube video ID.
var videoIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ParseVideoID extracts the 11-character video ID from a YouTube URL.
// Returns ErrInvalidVideoURL when the link cannot be parsed.
func ParseVideoID(url string) (string, error) {
	m := videoURLRe.FindStringSubmatch(url)
	if m == nil || len(m[2]) != 11 {
		return "", fmt.Errorf("%w: %q", model.ErrInvalidVideoURL, url)
	}
	return m[2], nil
}

// ValidVideoID reports whether id looks like a YouTube video ID.
func ValidVideoID(id string) bool {
	return videoIDRe.MatchString(id)
}

// WatchURL builds the canonical watch URL for a video ID.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
