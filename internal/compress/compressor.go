// Package compress implements single-document compression: query-relevant
// extraction, structural summarization and comment/whitespace stripping.
package compress

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/dkoval/ctxpress/internal/model"
)

// Compression methods.
const (
	MethodAuto     = "auto"
	MethodRelevant = "relevant"
	MethodSummary  = "summary"
	MethodStrip    = "strip"
)

const (
	contextWindow   = 5
	summaryHeadLine = 50
	previewLen      = 200
	largeFileBytes  = 50000
	largeTextBytes  = 10000
	shortParaBytes  = 200
)

var codeExtensions = map[string]bool{
	".py": true, ".js": true, ".java": true,
	".cpp": true, ".c": true, ".go": true, ".rs": true,
}

// ValidateMethod reports an error when method is not one of the supported
// compression methods.
func ValidateMethod(method string) error {
	switch method {
	case MethodAuto, MethodRelevant, MethodSummary, MethodStrip:
		return nil
	}
	return fmt.Errorf("invalid method %q, must be one of: auto, relevant, summary, strip", method)
}

// Compressor applies compression methods to document content. It is
// stateless; one instance may be shared by concurrent callers.
type Compressor struct{}

// New creates a new compressor.
func New() *Compressor {
	return &Compressor{}
}

// Compress reduces file content read by the caller. The name is used only
// for its extension when choosing and applying methods. The returned string
// is the compressed content; the result carries the metrics.
func (c *Compressor) Compress(name, content, query, method string) (string, model.CompressionResult, error) {
	if err := ValidateMethod(method); err != nil {
		return "", model.CompressionResult{}, err
	}

	ext := strings.ToLower(filepath.Ext(name))
	if method == MethodAuto {
		method = chooseMethod(ext, content, query)
	}

	var compressed string
	switch {
	case method == MethodRelevant && query != "":
		compressed = c.extractRelevant(content, query, ext)
	case method == MethodSummary:
		compressed = c.summarize(content, ext)
	case method == MethodStrip:
		compressed = c.strip(content, ext)
	default:
		compressed = content
	}

	return compressed, buildResult(content, compressed, method), nil
}

// CompressText reduces arbitrary text with no file association.
func (c *Compressor) CompressText(text, query, method string) (string, model.CompressionResult, error) {
	if err := ValidateMethod(method); err != nil {
		return "", model.CompressionResult{}, err
	}

	if method == MethodAuto {
		switch {
		case query != "":
			method = MethodRelevant
		case len(text) > largeTextBytes:
			method = MethodSummary
		default:
			method = MethodStrip
		}
	}

	var compressed string
	switch {
	case method == MethodRelevant && query != "":
		compressed = extractRelevantText(text, query)
	case method == MethodSummary:
		compressed = summarizeText(text)
	case method == MethodStrip:
		compressed = stripWhitespace(text)
	default:
		compressed = text
	}

	return compressed, buildResult(text, compressed, method), nil
}

// EstimateTokens approximates the token count of text.
func EstimateTokens(text string) int {
	return len(text) / model.CharsPerToken
}

func buildResult(original, compressed, method string) model.CompressionResult {
	ratio := 1.0
	if len(original) > 0 {
		ratio = float64(len(compressed)) / float64(len(original))
	}
	preview := compressed
	if len(preview) > previewLen {
		preview = preview[:previewLen] + "..."
	}
	return model.CompressionResult{
		OriginalSize:          len(original),
		CompressedSize:        len(compressed),
		CompressionRatio:      ratio,
		EstimatedTokenSavings: EstimateTokens(original) - EstimateTokens(compressed),
		Method:                method,
		Preview:               preview,
	}
}

func chooseMethod(ext, content, query string) string {
	if query != "" {
		return MethodRelevant
	}
	if codeExtensions[ext] {
		return MethodStrip
	}
	if len(content) > largeFileBytes {
		return MethodSummary
	}
	return MethodStrip
}

// extractRelevant pulls lines matching the query plus surrounding context,
// marking the gaps. With no matches it falls back to summarization.
func (c *Compressor) extractRelevant(content, query, ext string) string {
	lines := strings.Split(content, "\n")
	queryLower := strings.ToLower(query)

	var matches []int
	for i, line := range lines {
		if strings.Contains(strings.ToLower(line), queryLower) {
			matches = append(matches, i)
		}
	}
	if len(matches) == 0 {
		return c.summarize(content, ext)
	}

	keep := make(map[int]bool)
	for _, idx := range matches {
		start := idx - contextWindow
		if start < 0 {
			start = 0
		}
		end := idx + contextWindow + 1
		if end > len(lines) {
			end = len(lines)
		}
		for i := start; i < end; i++ {
			keep[i] = true
		}
	}

	indices := make([]int, 0, len(keep))
	for i := range keep {
		indices = append(indices, i)
	}
	sort.Ints(indices)

	var out []string
	last := -2
	for _, idx := range indices {
		if idx != last+1 {
			out = append(out, fmt.Sprintf("\n... (skipped %d lines) ...\n", idx-last-1))
		}
		out = append(out, lines[idx])
		last = idx
	}
	return strings.Join(out, "\n")
}

// extractRelevantText keeps paragraphs containing the query, falling back
// to the first three paragraphs.
func extractRelevantText(text, query string) string {
	paragraphs := strings.Split(text, "\n\n")
	queryLower := strings.ToLower(query)

	var relevant []string
	for _, para := range paragraphs {
		if strings.Contains(strings.ToLower(para), queryLower) {
			relevant = append(relevant, para)
		}
	}
	if len(relevant) == 0 {
		if len(paragraphs) > 3 {
			paragraphs = paragraphs[:3]
		}
		return strings.Join(paragraphs, "\n\n")
	}
	return strings.Join(relevant, "\n\n")
}

// summarize keeps code structure for source files and the leading
// non-empty lines otherwise.
func (c *Compressor) summarize(content, ext string) string {
	switch ext {
	case ".py":
		return extractPythonStructure(content)
	case ".go":
		return extractGoStructure(content)
	}

	lines := strings.Split(content, "\n")
	head := lines
	if len(head) > summaryHeadLine {
		head = head[:summaryHeadLine]
	}

	var out []string
	for _, line := range head {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	if len(lines) > summaryHeadLine {
		out = append(out, fmt.Sprintf("\n... (truncated %d lines) ...", len(lines)-summaryHeadLine))
	}
	return strings.Join(out, "\n")
}

// summarizeText keeps the first paragraph plus any short paragraph, which
// tend to be headers.
func summarizeText(text string) string {
	paragraphs := strings.Split(text, "\n\n")
	if len(paragraphs) == 0 {
		return text
	}

	summary := []string{paragraphs[0]}
	for _, para := range paragraphs[1:] {
		if len(para) < shortParaBytes {
			summary = append(summary, para)
		}
	}
	return strings.Join(summary, "\n\n")
}

func (c *Compressor) strip(content, ext string) string {
	switch ext {
	case ".py":
		return stripPython(content)
	case ".js":
		return stripJavaScript(content)
	case ".html", ".htm":
		return stripWhitespace(VisibleText(content))
	}
	return stripWhitespace(content)
}

var blankRunRe = regexp.MustCompile(`\n{3,}`)

// stripWhitespace collapses runs of blank lines and trims trailing
// whitespace per line.
func stripWhitespace(text string) string {
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
