package ingest

import (
	"regexp"
	"strings"

	"github.com/adarsha-ai/backend/internal/domain/knowledge"
)

const (
	defaultChunkSize = 1500
	defaultOverlap   = 300

	// Fragments shorter than this carry too little signal to embed.
	minChunkChars = 100
)

var majorBoundaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^={50,}`),
	regexp.MustCompile(`^SECTION\s+\d+:`),
	regexp.MustCompile(`^\[METADATA\]`),
}

var subBoundaryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^-{30,}`),
	regexp.MustCompile(`^\d+\.\d+\s+[A-Z]`),
	regexp.MustCompile(`^[A-Z][A-Z\s]{8,}:?\s*$`),
	regexp.MustCompile(`^ZONE\s+[A-D]:`),
	regexp.MustCompile(`^#+\s+`),
	regexp.MustCompile(`^\*\*[^*]+\*\*\s*$`),
}

var sectionTitleStrips = []*regexp.Regexp{
	regexp.MustCompile(`^={3,}\s*`),
	regexp.MustCompile(`^-{3,}\s*`),
	regexp.MustCompile(`^#+\s*`),
	regexp.MustCompile(`^\*\*|\*\*$`),
	regexp.MustCompile(`(?i)^SECTION\s+\d+:\s*`),
}

// keywordTerms are domain terms worth tagging on a chunk when present.
var keywordTerms = []string{
	"Adarsha", "School", "Thimi", "Bhaktapur", "Technical", "CTEVT", "NEB",
	"Sangam Gautam", "AI", "Chatbot", "Developer", "Project", "Science",
	"Renewable Energy", "Exhibition", "Student", "Teacher", "Principal",
	"Admission", "Examination", "SEE", "TSLC", "Computer Engineering",
}

// Chunker splits the knowledge document into overlapping passages,
// cutting preferentially at section boundaries so a chunk never
// straddles two unrelated topics.
type Chunker struct {
	chunkSize int
	overlap   int
}

// NewChunker creates a chunker with the default size and overlap.
func NewChunker() *Chunker {
	return &Chunker{chunkSize: defaultChunkSize, overlap: defaultOverlap}
}

// NewChunkerWith creates a chunker with explicit limits, used by tests.
func NewChunkerWith(chunkSize, overlap int) *Chunker {
	return &Chunker{chunkSize: chunkSize, overlap: overlap}
}

func isMajorBoundary(line string) bool {
	line = strings.TrimSpace(line)
	for _, p := range majorBoundaryPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

func isSubBoundary(line string) bool {
	line = strings.TrimSpace(line)
	for _, p := range subBoundaryPatterns {
		if p.MatchString(line) {
			return true
		}
	}
	return false
}

// sectionTitle strips decoration from a boundary line to get a usable
// section name. Returns "General" for lines that are pure decoration.
func sectionTitle(line string) string {
	line = strings.TrimSpace(line)
	for _, p := range sectionTitleStrips {
		line = p.ReplaceAllString(line, "")
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "General"
	}
	if len(line) > 150 {
		line = line[:150]
	}
	return line
}

func extractKeywords(text string) []string {
	lower := strings.ToLower(text)
	var keywords []string
	for _, term := range keywordTerms {
		if strings.Contains(lower, strings.ToLower(term)) {
			keywords = append(keywords, term)
		}
	}
	return keywords
}

// chunkState carries the accumulation across lines.
type chunkState struct {
	lines        []string
	length       int
	majorSection string
	subSection   string
	sectionPath  []string
	chunks       []knowledge.Chunk
}

// Chunk splits text into section-aware overlapping passages. Chunk IDs
// are assigned later by the indexer; here only text and metadata are
// produced.
func (c *Chunker) Chunk(text string) []knowledge.Chunk {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(text, "\n")

	state := &chunkState{
		majorSection: "Document Root",
		subSection:   "General",
	}

	for _, line := range lines {
		if isMajorBoundary(line) {
			c.flush(state)

			title := sectionTitle(line)
			state.majorSection = title
			state.sectionPath = []string{title}
			state.subSection = "General"

			state.lines = []string{line}
			state.length = len(line)
			continue
		}

		if isSubBoundary(line) {
			title := sectionTitle(line)
			state.subSection = title
			if len(state.sectionPath) < 2 {
				state.sectionPath = append(state.sectionPath, title)
			} else {
				state.sectionPath[len(state.sectionPath)-1] = title
			}
		}

		state.lines = append(state.lines, line)
		state.length += len(line) + 1

		if state.length >= c.chunkSize {
			c.flush(state)
			c.carryOverlap(state)
		}
	}

	c.flush(state)

	return state.chunks
}

// flush emits the accumulated lines as one chunk if they carry enough
// content. The accumulation is left untouched; callers reset it.
func (c *Chunker) flush(state *chunkState) {
	chunkText := strings.TrimSpace(strings.Join(state.lines, "\n"))
	if len(chunkText) <= minChunkChars {
		return
	}

	sectionPath := state.majorSection
	if len(state.sectionPath) > 0 {
		sectionPath = strings.Join(state.sectionPath, " > ")
	}

	state.chunks = append(state.chunks, knowledge.Chunk{
		Text: chunkText,
		Metadata: knowledge.ChunkMetadata{
			Section:     state.subSection,
			SectionPath: sectionPath,
			Keywords:    extractKeywords(chunkText),
			Index:       len(state.chunks),
			CharCount:   len(chunkText),
			WordCount:   len(strings.Fields(chunkText)),
		},
	})
}

// carryOverlap keeps the tail of the previous accumulation as the head
// of the next chunk so no fact is lost at a size cut.
func (c *Chunker) carryOverlap(state *chunkState) {
	var kept []string
	length := 0
	for i := len(state.lines) - 1; i >= 0; i-- {
		line := state.lines[i]
		if length+len(line)+1 > c.overlap {
			break
		}
		kept = append([]string{line}, kept...)
		length += len(line) + 1
	}
	state.lines = kept
	state.length = length
}
