// Package chunker slices extracted text into fixed-size passages for
// embedding. Slicing is contiguous and not word or sentence aware; keeping
// chunk boundaries dumb keeps ingestion latency flat regardless of content.
package chunker

import "iter"

// DefaultSize is the passage length, in characters, used by ingestion.
const DefaultSize = 500

// Chunk returns a lazy, restartable sequence of non-overlapping contiguous
// slices of exactly size characters. The final slice may be shorter. Sizes
// below 1 fall back to DefaultSize.
func Chunk(text string, size int) iter.Seq[string] {
	if size < 1 {
		size = DefaultSize
	}

	return func(yield func(string) bool) {
		runes := []rune(text)

		for i := 0; i < len(runes); i += size {
			end := min(i+size, len(runes))

			if !yield(string(runes[i:end])) {
				return
			}
		}
	}
}

// Split is Chunk collected into a slice.
func Split(text string, size int) []string {
	var chunks []string
	for chunk := range Chunk(text, size) {
		chunks = append(chunks, chunk)
	}
	return chunks
}
