package compress

import (
	"regexp"
	"strings"
)

// extractPythonStructure keeps class/def lines and their docstrings,
// dropping bodies. Falls back to a prefix of the content when nothing
// structural is found.
func extractPythonStructure(content string) string {
	lines := strings.Split(content, "\n")
	var structure []string

	inDocstring := false
	for _, line := range lines {
		stripped := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(stripped, "class ") || strings.HasPrefix(stripped, "def "):
			structure = append(structure, line)
			inDocstring = true
		case inDocstring && (strings.Contains(line, `"""`) || strings.Contains(line, "'''")):
			structure = append(structure, line)
			if strings.Count(line, `"""`) == 2 || strings.Count(line, "'''") == 2 {
				inDocstring = false
			}
		case inDocstring:
			structure = append(structure, line)
		}
	}

	if len(structure) == 0 {
		if len(content) > 1000 {
			return content[:1000]
		}
		return content
	}
	return strings.Join(structure, "\n")
}

// extractGoStructure keeps package/import/type/func/const/var declaration
// lines and the doc comments directly above them.
func extractGoStructure(content string) string {
	lines := strings.Split(content, "\n")
	var structure []string
	var pendingDoc []string

	for _, line := range lines {
		stripped := strings.TrimSpace(line)

		if strings.HasPrefix(stripped, "//") {
			pendingDoc = append(pendingDoc, line)
			continue
		}

		if isGoDecl(stripped) {
			structure = append(structure, pendingDoc...)
			structure = append(structure, line)
		}
		pendingDoc = pendingDoc[:0]
	}

	if len(structure) == 0 {
		if len(content) > 1000 {
			return content[:1000]
		}
		return content
	}
	return strings.Join(structure, "\n")
}

func isGoDecl(line string) bool {
	for _, prefix := range []string{"package ", "import ", "func ", "type ", "const ", "var "} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

// stripPython removes comments and docstrings and trims trailing
// whitespace.
func stripPython(content string) string {
	lines := strings.Split(content, "\n")
	var stripped []string

	inDocstring := false
	for _, line := range lines {
		trimmed := strings.TrimRight(line, " \t")

		if strings.Contains(line, `"""`) || strings.Contains(line, "'''") {
			marker := `"""`
			if !strings.Contains(line, `"""`) {
				marker = "'''"
			}
			if !inDocstring {
				inDocstring = strings.Count(line, marker) != 2
			} else {
				inDocstring = false
			}
			continue
		}
		if inDocstring {
			continue
		}

		if idx := strings.Index(trimmed, "#"); idx >= 0 {
			code := strings.TrimRight(trimmed[:idx], " \t")
			if code != "" {
				stripped = append(stripped, code)
			}
		} else if trimmed != "" {
			stripped = append(stripped, trimmed)
		}
	}
	return strings.Join(stripped, "\n")
}

var (
	jsLineCommentRe  = regexp.MustCompile(`(?m)//.*$`)
	jsBlockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// stripJavaScript removes // and /* */ comments, then collapses the
// leftover whitespace.
func stripJavaScript(content string) string {
	content = jsLineCommentRe.ReplaceAllString(content, "")
	content = jsBlockCommentRe.ReplaceAllString(content, "")
	return stripWhitespace(content)
}
