package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionDoc() string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString("SECTION 1: SCHOOL OVERVIEW\n")
	sb.WriteString(strings.Repeat("Adarsha Secondary School is located in Thimi, Bhaktapur. ", 6))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString("SECTION 2: STAFF DIRECTORY\n")
	sb.WriteString(strings.Repeat("The Principal leads the academic programs of the school. ", 6))
	sb.WriteString("\n")
	return sb.String()
}

func TestChunkEmptyInput(t *testing.T) {
	chunker := NewChunker()

	assert.Nil(t, chunker.Chunk(""))
	assert.Nil(t, chunker.Chunk("   \n\n  "))
}

func TestChunkSplitsAtMajorBoundaries(t *testing.T) {
	chunker := NewChunker()

	chunks := chunker.Chunk(sectionDoc())

	require.Len(t, chunks, 2)
	assert.Contains(t, chunks[0].Text, "Thimi, Bhaktapur")
	assert.Contains(t, chunks[1].Text, "Principal leads")
	assert.NotContains(t, chunks[0].Text, "Principal leads")
}

func TestChunkSectionMetadata(t *testing.T) {
	chunker := NewChunker()

	chunks := chunker.Chunk(sectionDoc())

	require.Len(t, chunks, 2)
	assert.Equal(t, "SCHOOL OVERVIEW", chunks[0].Metadata.SectionPath)
	assert.Equal(t, "STAFF DIRECTORY", chunks[1].Metadata.SectionPath)
	assert.Equal(t, 0, chunks[0].Metadata.Index)
	assert.Equal(t, 1, chunks[1].Metadata.Index)
	assert.Positive(t, chunks[0].Metadata.CharCount)
	assert.Positive(t, chunks[0].Metadata.WordCount)
}

func TestChunkSubSections(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString("SECTION 1: ACADEMICS\n")
	sb.WriteString("ADMISSION PROCESS\n")
	sb.WriteString(strings.Repeat("Students apply through the school office each spring. ", 6))
	sb.WriteString("\n")

	chunks := NewChunker().Chunk(sb.String())

	require.Len(t, chunks, 1)
	assert.Equal(t, "ADMISSION PROCESS", chunks[0].Metadata.Section)
	assert.Equal(t, "ACADEMICS > ADMISSION PROCESS", chunks[0].Metadata.SectionPath)
}

func TestChunkSizeSplitWithOverlap(t *testing.T) {
	chunker := NewChunkerWith(300, 120)

	var sb strings.Builder
	for i := 0; i < 20; i++ {
		sb.WriteString("Adarsha school line with enough text to matter here.\n")
	}

	chunks := chunker.Chunk(sb.String())

	require.Greater(t, len(chunks), 1)
	// overlap carries the tail of one chunk into the head of the next
	firstTail := chunks[0].Text[len(chunks[0].Text)-40:]
	assert.Contains(t, chunks[1].Text, strings.TrimSpace(firstTail))
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk.Text), 300+120)
	}
}

func TestChunkDropsTinyFragments(t *testing.T) {
	chunks := NewChunker().Chunk("short text")

	assert.Empty(t, chunks)
}

func TestChunkKeywords(t *testing.T) {
	text := strings.Repeat("Adarsha Secondary School admission in Thimi requires an entrance examination. ", 3)

	chunks := NewChunker().Chunk(text)

	require.Len(t, chunks, 1)
	assert.Contains(t, chunks[0].Metadata.Keywords, "Adarsha")
	assert.Contains(t, chunks[0].Metadata.Keywords, "Thimi")
	assert.Contains(t, chunks[0].Metadata.Keywords, "Admission")
	assert.NotContains(t, chunks[0].Metadata.Keywords, "CTEVT")
}

func TestSectionTitleStripsDecoration(t *testing.T) {
	cases := map[string]string{
		"SECTION 3: FACILITIES": "FACILITIES",
		"## History":            "History",
		"**Staff Roster**":      "Staff Roster",
		"==========":            "General",
	}
	for input, want := range cases {
		assert.Equal(t, want, sectionTitle(input), "input %q", input)
	}
}
