package corpus

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"nephro-assistant-be/pkg/utils"
)

// Chunk is one indexable corpus excerpt. Index is the chunk's position before
// filtering, which the 1-based label is derived from, so labels keep their
// gaps when noise chunks drop out.
type Chunk struct {
	Label string
	Text  string
	Index int
}

var noiseWordsRe = regexp.MustCompile(`\b(page|contents|figure|table|section|author|publisher)\b`)

const bulletGlyphs = "·•…→"

// IsRelevantChunk rejects chunks that carry layout noise instead of clinical
// content: too short, chapter headers, front-matter vocabulary, or runs of
// list glyphs.
func IsRelevantChunk(chunk string) bool {
	length := utf8.RuneCountInString(chunk)
	if length < 150 {
		return false
	}
	lower := strings.ToLower(chunk)
	if strings.Contains(lower, "chapter") && length < 500 {
		return false
	}
	if noiseWordsRe.MatchString(lower) {
		return false
	}
	glyphCount := 0
	for _, g := range bulletGlyphs {
		glyphCount += strings.Count(chunk, string(g))
	}
	return glyphCount <= 3
}

// ChunkAndFilter splits cleaned text and keeps only relevant chunks, labeled
// "<document>:chunk_<n>".
func ChunkAndFilter(text, document string, chunkSize, overlap int) []Chunk {
	raw := utils.SplitText(text, chunkSize, overlap)

	var filtered []Chunk
	for i, c := range raw {
		if !IsRelevantChunk(c) {
			continue
		}
		filtered = append(filtered, Chunk{
			Label: fmt.Sprintf("%s:chunk_%d", document, i+1),
			Text:  c,
			Index: i,
		})
	}
	return filtered
}
