package integrity

import (
	"strings"
	"testing"

	"pgregory.net/rapid"
)

func TestEscapeHTML(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"<script>alert(1)</script>", "&lt;script&gt;alert(1)&lt;/script&gt;"},
		{`Tom & "Jerry"`, "Tom &amp; &quot;Jerry&quot;"},
		{"it's", "it&#039;s"},
		{"&amp;", "&amp;amp;"},
	}

	for _, tt := range tests {
		if got := EscapeHTML(tt.in); got != tt.want {
			t.Errorf("EscapeHTML(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEscapeHTML_NoRawMarkup(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		in := rapid.String().Draw(t, "in")
		out := EscapeHTML(in)

		if strings.ContainsAny(out, `<>"'`) {
			t.Fatalf("raw markup survived escaping: %q", out)
		}
		// every ampersand left must open one of the five entities
		rest := out
		for {
			i := strings.IndexByte(rest, '&')
			if i < 0 {
				break
			}
			rest = rest[i:]
			ok := false
			for _, entity := range []string{"&amp;", "&lt;", "&gt;", "&quot;", "&#039;"} {
				if strings.HasPrefix(rest, entity) {
					rest = rest[len(entity):]
					ok = true
					break
				}
			}
			if !ok {
				t.Fatalf("bare ampersand in %q", out)
			}
		}
	})
}

func TestNormalizeDisclaimerText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapses blanks", "a  \t b", "a b"},
		{"trims lines", "  first line  \n\tsecond\t", "first line\nsecond"},
		{"strips controls", "bell\x07 and\x00 null\x7f", "bell and null"},
		{"control inside blank run", "a \x01 b", "a b"},
		{"keeps newlines", "one\n\ntwo", "one\n\ntwo"},
		{"keeps carriage return", "one\r", "one"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeDisclaimerText(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidateSourceURL(t *testing.T) {
	tests := []struct {
		url   string
		valid bool
		err   string
	}{
		{"https://www.census.gov/data", true, ""},
		{"http://example.org", true, ""},
		{"", false, "URL cannot be empty"},
		{"   ", false, "URL cannot be empty"},
		{"javascript:alert(1)", false, "URL uses unsafe protocol"},
		{"data:text/html,hi", false, "URL uses unsafe protocol"},
		{"VBScript:msgbox", false, "URL uses unsafe protocol"},
		{"ftp://example.org/file", false, "URL must use HTTP or HTTPS protocol"},
		{"not a url", false, "URL is not valid"},
		{"https://", false, "URL is not valid"},
	}

	for _, tt := range tests {
		got := ValidateSourceURL(tt.url)
		if got.Valid != tt.valid || got.Error != tt.err {
			t.Errorf("ValidateSourceURL(%q) = %+v, want valid=%v err=%q", tt.url, got, tt.valid, tt.err)
		}
	}
}
