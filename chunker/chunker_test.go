package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunk(t *testing.T) {
	t.Run("concatenation equals input", func(t *testing.T) {
		text := strings.Repeat("abcdefghij", 137)

		var rejoined strings.Builder
		for chunk := range Chunk(text, 500) {
			rejoined.WriteString(chunk)
		}

		assert.Equal(t, text, rejoined.String())
	})

	t.Run("all chunks except the last are exactly size", func(t *testing.T) {
		text := strings.Repeat("x", 1234)

		chunks := Split(text, 500)
		require.Len(t, chunks, 3)

		assert.Len(t, chunks[0], 500)
		assert.Len(t, chunks[1], 500)
		assert.Len(t, chunks[2], 234)
	})

	t.Run("input shorter than size yields one chunk", func(t *testing.T) {
		chunks := Split("short", 500)
		require.Len(t, chunks, 1)
		assert.Equal(t, "short", chunks[0])
	})

	t.Run("empty input yields no chunks", func(t *testing.T) {
		assert.Empty(t, Split("", 500))
	})

	t.Run("sequence is restartable", func(t *testing.T) {
		seq := Chunk(strings.Repeat("y", 1000), 400)

		first := []string{}
		for chunk := range seq {
			first = append(first, chunk)
		}

		second := []string{}
		for chunk := range seq {
			second = append(second, chunk)
		}

		assert.Equal(t, first, second)
	})

	t.Run("slicing counts characters not bytes", func(t *testing.T) {
		text := strings.Repeat("é", 10)

		chunks := Split(text, 4)
		require.Len(t, chunks, 3)

		assert.Equal(t, strings.Repeat("é", 4), chunks[0])
		assert.Equal(t, strings.Repeat("é", 4), chunks[1])
		assert.Equal(t, strings.Repeat("é", 2), chunks[2])
	})

	t.Run("non-positive size falls back to default", func(t *testing.T) {
		text := strings.Repeat("z", DefaultSize+1)

		chunks := Split(text, 0)
		require.Len(t, chunks, 2)
		assert.Len(t, chunks[0], DefaultSize)
	})

	t.Run("early break stops iteration", func(t *testing.T) {
		count := 0
		for range Chunk(strings.Repeat("a", 5000), 100) {
			count++
			if count == 3 {
				break
			}
		}
		assert.Equal(t, 3, count)
	})
}
