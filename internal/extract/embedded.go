// Package extract reads governance input out of rendered HTML pages: the
// embedded page manifest and content flags inferred from visible text.
package extract

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/ppiankov/govgate/internal/manifest"
)

// ManifestMediaType marks the script element carrying a page manifest
const ManifestMediaType = "application/vnd.govgate+json"

// ErrNoManifest is returned when a page carries no embedded manifest
var ErrNoManifest = errors.New("no embedded governance manifest")

// EmbeddedManifest returns the raw JSON of the first manifest script in the page
func EmbeddedManifest(htmlContent string) ([]byte, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return embeddedManifest(doc)
}

func embeddedManifest(doc *html.Node) ([]byte, error) {
	script := find(doc, func(n *html.Node) bool {
		return n.Data == "script" && strings.EqualFold(strings.TrimSpace(attr(n, "type")), ManifestMediaType)
	})
	if script == nil {
		return nil, ErrNoManifest
	}

	var buf strings.Builder
	for c := script.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			buf.WriteString(c.Data)
		}
	}

	raw := strings.TrimSpace(buf.String())
	if raw == "" {
		return nil, ErrNoManifest
	}
	return []byte(raw), nil
}

// PageExtractor turns a rendered page into a manifest
type PageExtractor struct {
	detector *FlagDetector
}

// NewPageExtractor creates an extractor using the default flag detector
func NewPageExtractor() *PageExtractor {
	return &PageExtractor{detector: NewFlagDetector()}
}

// Extract parses the embedded manifest, merges in flags detected from the
// visible text, and fills the pathname from pageURL when the manifest omits it.
// Declared flags are never cleared.
func (e *PageExtractor) Extract(htmlContent, pageURL string) (*manifest.Manifest, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	raw, err := embeddedManifest(doc)
	if err != nil {
		return nil, err
	}

	m, err := manifest.Parse(raw, manifest.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("embedded manifest: %w", err)
	}

	detected := e.detector.DetectText(visibleText(doc))
	m.Page.ContentFlags = m.Page.ContentFlags.Merge(detected)

	if m.Page.Pathname == "" && pageURL != "" {
		if u, err := url.Parse(pageURL); err == nil {
			m.Page.Pathname = u.Path
			if m.Page.Pathname == "" {
				m.Page.Pathname = "/"
			}
		}
	}

	return m, nil
}
