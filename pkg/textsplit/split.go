package textsplit

import (
	"iter"
	"strings"
)

// DefaultChunkWords is the word budget used when a caller passes size <= 0.
const DefaultChunkWords = 2000

// Chunks returns a lazy sequence of word-bounded chunks of text. Each chunk
// holds exactly size whitespace-delimited words re-joined with single spaces,
// in original order; the final chunk holds the remainder and is omitted when
// empty. The sequence is restartable: ranging over it twice yields the same
// chunks.
func Chunks(text string, size int) iter.Seq[string] {
	if size <= 0 {
		size = DefaultChunkWords
	}
	return func(yield func(string) bool) {
		words := strings.Fields(text)
		for start := 0; start < len(words); start += size {
			end := min(start+size, len(words))
			if !yield(strings.Join(words[start:end], " ")) {
				return
			}
		}
	}
}

// Split materializes Chunks into a slice.
func Split(text string, size int) []string {
	var out []string
	for chunk := range Chunks(text, size) {
		out = append(out, chunk)
	}
	return out
}

// WordCount returns the number of whitespace-delimited words in text.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
