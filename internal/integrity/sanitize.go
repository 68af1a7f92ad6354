package integrity

import (
	"net/url"
	"strings"
)

var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeHTML escapes the five HTML-significant characters
func EscapeHTML(text string) string {
	return htmlEscaper.Replace(text)
}

// NormalizeDisclaimerText strips control characters other than newline and
// tab, collapses runs of spaces and tabs to one space, and trims every line
func NormalizeDisclaimerText(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	inBlank := false
	for _, r := range text {
		switch {
		case r == '\n':
			b.WriteRune(r)
			inBlank = false
		case r == ' ' || r == '\t':
			if !inBlank {
				b.WriteByte(' ')
				inBlank = true
			}
		case isStrippedControl(r):
			// dropped; does not break a run of blanks
		default:
			b.WriteRune(r)
			inBlank = false
		}
	}

	lines := strings.Split(b.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.Join(lines, "\n")
}

// isStrippedControl matches C0 controls except tab, newline and carriage return, plus DEL
func isStrippedControl(r rune) bool {
	return r <= 0x08 || r == 0x0B || r == 0x0C || (r >= 0x0E && r <= 0x1F) || r == 0x7F
}

// URLCheck is the outcome of ValidateSourceURL
type URLCheck struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

var unsafeSchemes = map[string]bool{
	"javascript": true,
	"data":       true,
	"vbscript":   true,
}

// ValidateSourceURL decides whether a URL is safe to render as a link
func ValidateSourceURL(raw string) URLCheck {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return URLCheck{Error: "URL cannot be empty"}
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" {
		return URLCheck{Error: "URL is not valid"}
	}

	scheme := strings.ToLower(parsed.Scheme)
	if unsafeSchemes[scheme] {
		return URLCheck{Error: "URL uses unsafe protocol"}
	}
	if scheme != "http" && scheme != "https" {
		return URLCheck{Error: "URL must use HTTP or HTTPS protocol"}
	}
	if parsed.Host == "" {
		return URLCheck{Error: "URL is not valid"}
	}

	return URLCheck{Valid: true}
}
