package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ppiankov/govgate/internal/model"
)

const yamlManifest = `page:
  pageType: comparison
  pathname: /compare/acme-vs-globex
  hasCompetitorComparison: true
disclaimer:
  sources:
    - name: Vendor pricing pages
      url: https://example.com/vendors
      type: external
      access_date: 2025-06-01
  lastUpdated: 2025-06-10T09:00:00Z
  methodologySummary: Compared public feature lists.
  limitations:
    - Features change over time.
  claimTypes: [competitor, astrology]
  approvalToken: rev-2025-0001
`

const jsonManifest = `{
  "page": {"pageType": "pricing", "pathname": "/pricing", "hasPricing": true},
  "disclaimer": {
    "sources": [],
    "lastUpdated": "2025-06-10",
    "methodologySummary": "",
    "limitations": ["Estimates may vary"],
    "claimTypes": ["pricing"]
  }
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestParse_YAML(t *testing.T) {
	m, err := Parse([]byte(yamlManifest), FormatYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if m.Page.PageType != model.PageComparison {
		t.Errorf("expected comparison page, got %q", m.Page.PageType)
	}
	if !m.Page.HasCompetitorComparison {
		t.Error("expected competitor flag from inline content flags")
	}
	if len(m.Disclaimer.Sources) != 1 || m.Disclaimer.Sources[0].AccessDate != "2025-06-01" {
		t.Errorf("unexpected sources %+v", m.Disclaimer.Sources)
	}
	if m.Disclaimer.Sources[0].Type != model.SourceExternal {
		t.Errorf("expected external source, got %q", m.Disclaimer.Sources[0].Type)
	}
	want := []model.ClaimType{model.ClaimCompetitor, "astrology"}
	if !reflect.DeepEqual(m.Disclaimer.ClaimTypes, want) {
		t.Errorf("expected unknown claim types preserved, got %v", m.Disclaimer.ClaimTypes)
	}
	if m.Disclaimer.ApprovalToken != "rev-2025-0001" {
		t.Errorf("unexpected token %q", m.Disclaimer.ApprovalToken)
	}
	if m.Subject() != "/compare/acme-vs-globex" {
		t.Errorf("unexpected subject %q", m.Subject())
	}
}

func TestParse_JSON(t *testing.T) {
	m, err := Parse([]byte(jsonManifest), FormatJSON)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.Page.PageType != model.PagePricing || !m.Page.HasPricing {
		t.Errorf("unexpected page %+v", m.Page)
	}
	if m.Disclaimer.LastUpdated != "2025-06-10" {
		t.Errorf("unexpected lastUpdated %q", m.Disclaimer.LastUpdated)
	}
}

func TestParse_PageTypeDefaults(t *testing.T) {
	m, err := Parse([]byte("disclaimer:\n  limitations: [x]\n"), FormatYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.Page.PageType != model.PageOther {
		t.Errorf("expected other for missing page type, got %q", m.Page.PageType)
	}

	m, err = Parse([]byte("page:\n  pageType: landing\ndisclaimer: {}\n"), FormatYAML)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.Page.PageType != "landing" {
		t.Errorf("expected unknown page type preserved, got %q", m.Page.PageType)
	}
	if m.Page.PageType.Known() || model.ParsePageType(string(m.Page.PageType)) != model.PageOther {
		t.Errorf("expected %q to classify as other", m.Page.PageType)
	}
}

func TestParse_ShapeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty document", ""},
		{"missing disclaimer", "page:\n  pageType: tool\n"},
		{"unknown top-level key", "disclaimer: {}\nextra: 1\n"},
		{"sources not a list", "disclaimer:\n  sources: census\n"},
		{"numeric token", "disclaimer:\n  approvalToken: 12345678\n"},
		{"flag not boolean", "page:\n  hasPricing: maybe\ndisclaimer: {}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), FormatYAML)
			if !errors.Is(err, ErrInvalidShape) {
				t.Errorf("expected ErrInvalidShape, got %v", err)
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte("{not json"), FormatJSON); err == nil || errors.Is(err, ErrInvalidShape) {
		t.Errorf("expected decode error, got %v", err)
	}
	if _, err := Parse([]byte("{}"), Format("toml")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "pricing.json", jsonManifest)

	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Path != path {
		t.Errorf("expected path %s, got %s", path, m.Path)
	}

	if _, err := Load(filepath.Join(dir, "notes.txt")); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestSubject_FallsBackToFileName(t *testing.T) {
	m := &Manifest{Path: "/srv/pages/about.yaml"}
	if got := m.Subject(); got != "about.yaml" {
		t.Errorf("expected about.yaml, got %q", got)
	}
	if got := (&Manifest{}).Subject(); got != "(unnamed)" {
		t.Errorf("expected placeholder subject, got %q", got)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", yamlManifest)
	writeFile(t, dir, "a.json", jsonManifest)
	writeFile(t, dir, "nested/c.yml", yamlManifest)
	writeFile(t, dir, "README.md", "# docs")
	writeFile(t, dir, ".git/config.yaml", "ignored: true")

	paths, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []string{
		filepath.Join(dir, "a.json"),
		filepath.Join(dir, "b.yaml"),
		filepath.Join(dir, "nested", "c.yml"),
	}
	if !reflect.DeepEqual(paths, want) {
		t.Errorf("expected %v, got %v", want, paths)
	}
}

func TestExpand(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "pages/a.yaml", yamlManifest)
	b := writeFile(t, dir, "pages/b.json", jsonManifest)
	list := writeFile(t, dir, "pages.txt", "# release 12\npages/a.yaml\n\n"+b+"\n")

	paths, err := Expand(list)
	if err != nil {
		t.Fatalf("Expand list: %v", err)
	}
	if !reflect.DeepEqual(paths, []string{a, b}) {
		t.Errorf("expected %v, got %v", []string{a, b}, paths)
	}

	paths, err = Expand(filepath.Join(dir, "pages"))
	if err != nil {
		t.Fatalf("Expand dir: %v", err)
	}
	if len(paths) != 2 {
		t.Errorf("expected 2 manifests, got %v", paths)
	}

	paths, err = Expand(a)
	if err != nil || len(paths) != 1 || paths[0] != a {
		t.Errorf("expected single manifest, got %v (%v)", paths, err)
	}

	if _, err := Expand(filepath.Join(dir, "nope")); err == nil {
		t.Error("expected error for missing path")
	}
}
