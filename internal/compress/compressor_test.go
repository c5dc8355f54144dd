package compress

import (
	"fmt"
	"strings"
	"testing"
)

func TestValidateMethod(t *testing.T) {
	for _, method := range []string{MethodAuto, MethodRelevant, MethodSummary, MethodStrip} {
		if err := ValidateMethod(method); err != nil {
			t.Errorf("method %q rejected: %v", method, err)
		}
	}
	if err := ValidateMethod("lossy"); err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestCompress_StripPython(t *testing.T) {
	content := "# header comment\ndef add(a, b):\n    \"\"\"Add two numbers.\"\"\"\n    return a + b  # trailing\n"

	compressed, result, err := New().Compress("calc.py", content, "", MethodStrip)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(compressed, "#") {
		t.Errorf("comments must be removed:\n%s", compressed)
	}
	if strings.Contains(compressed, "Add two numbers") {
		t.Errorf("docstrings must be removed:\n%s", compressed)
	}
	if !strings.Contains(compressed, "def add(a, b):") || !strings.Contains(compressed, "return a + b") {
		t.Errorf("code must survive stripping:\n%s", compressed)
	}
	if result.Method != MethodStrip {
		t.Errorf("expected method strip, got %s", result.Method)
	}
}

func TestCompress_StripJavaScript(t *testing.T) {
	content := "// header\nfunction f() { /* body\ncomment */ return 1; }\n"

	compressed, _, err := New().Compress("app.js", content, "", MethodStrip)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(compressed, "header") || strings.Contains(compressed, "comment") {
		t.Errorf("comments must be removed:\n%s", compressed)
	}
	if !strings.Contains(compressed, "return 1;") {
		t.Errorf("code must survive stripping:\n%s", compressed)
	}
}

func TestCompress_StripHTML(t *testing.T) {
	content := "<html><head><script>var x=1;</script><style>p{color:red}</style></head>" +
		"<body><p>Hello world</p><noscript>enable js</noscript></body></html>"

	compressed, _, err := New().Compress("page.html", content, "", MethodStrip)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(compressed, "Hello world") {
		t.Errorf("visible text must survive:\n%s", compressed)
	}
	for _, hidden := range []string{"var x=1", "color:red", "enable js"} {
		if strings.Contains(compressed, hidden) {
			t.Errorf("hidden content %q must be removed:\n%s", hidden, compressed)
		}
	}
}

func TestStripWhitespace(t *testing.T) {
	got := stripWhitespace("a   \n\n\n\nb\t")
	if got != "a\n\nb" {
		t.Errorf("expected %q, got %q", "a\n\nb", got)
	}
}

func TestCompress_SummaryText(t *testing.T) {
	var lines []string
	for i := 1; i <= 60; i++ {
		lines = append(lines, fmt.Sprintf("row %02d", i))
	}
	content := strings.Join(lines, "\n")

	compressed, _, err := New().Compress("notes.txt", content, "", MethodSummary)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(compressed, "row 50") {
		t.Errorf("head lines must be kept:\n%s", compressed)
	}
	if strings.Contains(compressed, "row 51") {
		t.Errorf("tail lines must be dropped:\n%s", compressed)
	}
	if !strings.Contains(compressed, "... (truncated 10 lines) ...") {
		t.Errorf("truncation marker missing:\n%s", compressed)
	}
}

func TestCompress_SummaryGoStructure(t *testing.T) {
	content := "// Package demo does things.\npackage demo\n\n// Add adds.\nfunc Add(a, b int) int {\n\treturn a + b\n}\n"

	compressed, _, err := New().Compress("demo.go", content, "", MethodSummary)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"package demo", "// Add adds.", "func Add(a, b int) int {"} {
		if !strings.Contains(compressed, want) {
			t.Errorf("structure line %q missing:\n%s", want, compressed)
		}
	}
	if strings.Contains(compressed, "return a + b") {
		t.Errorf("function bodies must be dropped:\n%s", compressed)
	}
}

func TestCompress_SummaryPythonStructure(t *testing.T) {
	content := "def greet(name):\n    \"\"\"Say hello.\"\"\"\n    return name\n"

	compressed, _, err := New().Compress("greet.py", content, "", MethodSummary)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(compressed, "def greet(name):") || !strings.Contains(compressed, "Say hello") {
		t.Errorf("signature and docstring must be kept:\n%s", compressed)
	}
	if strings.Contains(compressed, "return name") {
		t.Errorf("bodies must be dropped:\n%s", compressed)
	}
}

func TestSummarizeText(t *testing.T) {
	long := strings.Repeat("x", 300)
	text := "intro paragraph\n\n" + long + "\n\nshort header"

	got := summarizeText(text)
	if !strings.Contains(got, "intro paragraph") || !strings.Contains(got, "short header") {
		t.Errorf("first and short paragraphs must be kept:\n%s", got)
	}
	if strings.Contains(got, long) {
		t.Errorf("long paragraphs must be dropped:\n%s", got)
	}
}

func TestCompress_RelevantLines(t *testing.T) {
	var lines []string
	for i := 0; i < 30; i++ {
		lines = append(lines, fmt.Sprintf("row %02d", i))
	}
	lines[15] = "the needle is here"
	content := strings.Join(lines, "\n")

	compressed, _, err := New().Compress("doc.txt", content, "needle", MethodRelevant)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(compressed, "the needle is here") {
		t.Errorf("matching line missing:\n%s", compressed)
	}
	if !strings.Contains(compressed, "row 10") || !strings.Contains(compressed, "row 20") {
		t.Errorf("context window must be kept:\n%s", compressed)
	}
	if strings.Contains(compressed, "row 09") || strings.Contains(compressed, "row 21") {
		t.Errorf("lines outside the window must be dropped:\n%s", compressed)
	}
	if !strings.Contains(compressed, "... (skipped 11 lines) ...") {
		t.Errorf("skip marker missing:\n%s", compressed)
	}
}

func TestCompress_RelevantFallsBackToSummary(t *testing.T) {
	var lines []string
	for i := 1; i <= 60; i++ {
		lines = append(lines, fmt.Sprintf("row %02d", i))
	}

	compressed, result, err := New().Compress("doc.txt", strings.Join(lines, "\n"), "absent", MethodRelevant)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(compressed, "... (truncated 10 lines) ...") {
		t.Errorf("expected summary fallback:\n%s", compressed)
	}
	if result.Method != MethodRelevant {
		t.Errorf("requested method must be reported, got %s", result.Method)
	}
}

func TestCompressText_RelevantParagraphs(t *testing.T) {
	text := "first paragraph\n\nthe topic appears here\n\nthird paragraph"

	compressed, _, err := New().CompressText(text, "topic", MethodRelevant)
	if err != nil {
		t.Fatal(err)
	}
	if compressed != "the topic appears here" {
		t.Errorf("expected only the matching paragraph, got %q", compressed)
	}
}

func TestCompressText_RelevantFallback(t *testing.T) {
	text := "one\n\ntwo\n\nthree\n\nfour\n\nfive"

	compressed, _, err := New().CompressText(text, "absent", MethodRelevant)
	if err != nil {
		t.Fatal(err)
	}
	if compressed != "one\n\ntwo\n\nthree" {
		t.Errorf("expected first three paragraphs, got %q", compressed)
	}
}

func TestCompress_AutoSelection(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		query   string
		method  string
	}{
		{"query wins", "doc.txt", "the needle\nmore", "needle", MethodRelevant},
		{"code strips", "main.go", "package main\n", "", MethodStrip},
		{"small text strips", "doc.txt", "short note", "", MethodStrip},
		{"large text summarizes", "doc.txt", strings.Repeat("filler line\n", 5000), "", MethodSummary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, result, err := New().Compress(tt.file, tt.content, tt.query, MethodAuto)
			if err != nil {
				t.Fatal(err)
			}
			if result.Method != tt.method {
				t.Errorf("expected method %s, got %s", tt.method, result.Method)
			}
		})
	}
}

func TestCompressText_AutoSelection(t *testing.T) {
	_, result, err := New().CompressText(strings.Repeat("word ", 3000), "", MethodAuto)
	if err != nil {
		t.Fatal(err)
	}
	if result.Method != MethodSummary {
		t.Errorf("large text must summarize, got %s", result.Method)
	}

	_, result, err = New().CompressText("short", "", MethodAuto)
	if err != nil {
		t.Fatal(err)
	}
	if result.Method != MethodStrip {
		t.Errorf("small text must strip, got %s", result.Method)
	}
}

func TestCompress_Metrics(t *testing.T) {
	content := "# only a comment\nx = 1\n"

	compressed, result, err := New().Compress("m.py", content, "", MethodStrip)
	if err != nil {
		t.Fatal(err)
	}
	if result.OriginalSize != len(content) || result.CompressedSize != len(compressed) {
		t.Errorf("sizes do not match content: %+v", result)
	}
	want := float64(len(compressed)) / float64(len(content))
	if result.CompressionRatio != want {
		t.Errorf("expected ratio %f, got %f", want, result.CompressionRatio)
	}
	if result.EstimatedTokenSavings != EstimateTokens(content)-EstimateTokens(compressed) {
		t.Errorf("unexpected token savings %d", result.EstimatedTokenSavings)
	}
}

func TestCompress_PreviewTruncated(t *testing.T) {
	_, result, err := New().CompressText(strings.Repeat("a", 300), "", MethodStrip)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Preview) != 203 || !strings.HasSuffix(result.Preview, "...") {
		t.Errorf("expected 200-char preview with ellipsis, got %d chars", len(result.Preview))
	}
}

func TestCompressText_EmptyInput(t *testing.T) {
	compressed, result, err := New().CompressText("", "", MethodStrip)
	if err != nil {
		t.Fatal(err)
	}
	if compressed != "" {
		t.Errorf("expected empty output, got %q", compressed)
	}
	if result.CompressionRatio != 1.0 {
		t.Errorf("expected ratio 1.0, got %f", result.CompressionRatio)
	}
}

func TestVisibleText_Unparsable(t *testing.T) {
	// html.Parse is tolerant, so even fragments come back as text.
	if got := VisibleText("plain words"); got != "plain words" {
		t.Errorf("expected text preserved, got %q", got)
	}
}
