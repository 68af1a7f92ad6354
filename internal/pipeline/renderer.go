package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ppiankov/govgate/internal/integrity"
	"github.com/ppiankov/govgate/internal/model"
)

const footer = "_Generated by govgate. It checks attribution and disclosure only and does not verify that any claim is true._"

// Renderer turns reports into JSON, Markdown and console summaries
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// JSON encodes a report as indented JSON
func (r *Renderer) JSON(report *model.Report) ([]byte, error) {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal report: %w", err)
	}
	return append(data, '\n'), nil
}

// RenderJSON writes the JSON report to path
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := r.JSON(report)
	if err != nil {
		return err
	}
	return writeFile(path, data)
}

// RenderMarkdown writes the Markdown report to path
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return writeFile(path, []byte(r.Markdown(report)))
}

// Markdown renders a report for human review. Every author-supplied string
// is normalized and HTML-escaped; unsafe source URLs are never linked.
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder
	d := report.Disclaimer

	fmt.Fprintf(&b, "# Governance Report: %s\n\n", safe(report.Subject))

	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Decision | %s |\n", decision(report))
	fmt.Fprintf(&b, "| Requires approval | %t |\n", report.Gate.RequiresApproval)
	fmt.Fprintf(&b, "| Location | %s |\n", cell(report.Location))
	pageType := string(report.Page.PageType)
	if !report.Page.PageType.Known() {
		pageType += " (classified as other)"
	}
	fmt.Fprintf(&b, "| Page type | %s |\n", cell(pageType))
	fmt.Fprintf(&b, "| Evaluated | %s |\n", report.EvaluatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "| Disclaimer status | %s |\n", report.Status.Status)
	fmt.Fprintf(&b, "| Fingerprint | `%s` |\n", report.Fingerprint)
	fmt.Fprintf(&b, "| Run ID | `%s` |\n\n", report.RunID)

	// Gate
	b.WriteString("## Publish Gate\n\n")
	for _, code := range report.Gate.ReasonCodes {
		fmt.Fprintf(&b, "- `%s`\n", code)
	}
	if n := len(report.StructuralErrors()); n > 0 && report.Gate.CanPublish {
		fmt.Fprintf(&b, "- `%s` %d validation error(s) block publication\n", model.ReasonStructuralErrors, n)
	}
	for _, w := range report.Gate.Warnings {
		fmt.Fprintf(&b, "- ⚠️ %s\n", safe(w))
	}
	b.WriteString("\n")

	// Validation
	b.WriteString("## Disclaimer Validation\n\n")
	fmt.Fprintf(&b, "%s\n\n", safe(report.Staleness.Message))
	writeIssues(&b, "Errors", report.Validation.Errors)
	writeIssues(&b, "Warnings", report.Validation.Warnings)

	// Integrity
	b.WriteString("## Content Integrity\n\n")
	b.WriteString("| Check | Status | Message |\n|---|---|---|\n")
	for _, c := range report.Integrity.Checks {
		fmt.Fprintf(&b, "| %s | %s | %s |\n", c.Check, c.Status, cell(c.Message))
	}
	b.WriteString("\n")

	// Sources
	b.WriteString("## Sources\n\n")
	if len(d.Sources) == 0 {
		b.WriteString("_No data sources listed._\n\n")
	} else {
		b.WriteString("| # | Name | Type | Link | Accessed |\n|---|---|---|---|---|\n")
		for i, s := range d.Sources {
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n",
				i+1, cell(s.Name), cell(string(s.Type)), link(s.URL), cell(s.AccessDate))
		}
		b.WriteString("\n")
	}

	// Methodology
	b.WriteString("## Methodology\n\n")
	if strings.TrimSpace(d.MethodologySummary) == "" {
		b.WriteString("_No methodology summary._\n\n")
	} else {
		fmt.Fprintf(&b, "%s\n\n", safe(d.MethodologySummary))
	}
	if d.MethodologyURL != "" {
		fmt.Fprintf(&b, "Full methodology: %s\n\n", link(d.MethodologyURL))
	}

	// Limitations
	b.WriteString("## Limitations\n\n")
	if len(d.Limitations) == 0 {
		b.WriteString("_No limitations listed._\n\n")
	} else {
		for _, l := range d.Limitations {
			fmt.Fprintf(&b, "- %s\n", safe(l))
		}
		b.WriteString("\n")
	}

	if len(report.Links) > 0 {
		b.WriteString("## Source Link Audit\n\n")
		b.WriteString("_Advisory only. Link health does not affect the publish decision._\n\n")
		b.WriteString("| Source | Link | Status | Authority | Note |\n|---|---|---|---|---|\n")
		for _, l := range report.Links {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				cell(l.Source), link(l.URL), linkStatus(l), l.Authority, cell(linkNote(l)))
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString(footer)
		b.WriteString("\n")
	}

	return b.String()
}

// RenderSummary prints a short console summary
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	mark := "✓"
	if !report.IsPublishable() {
		mark = "✗"
	}
	fmt.Fprintf(w, "%s %s %s [%s]\n", mark, decision(report), report.Subject,
		strings.Join(report.DecisionReasons(), ", "))

	for _, warning := range report.Gate.Warnings {
		fmt.Fprintf(w, "    ⚠ %s\n", warning)
	}
	if n := len(report.Validation.Errors); n > 0 {
		fmt.Fprintf(w, "    %d validation error(s), %d warning(s)\n", n, len(report.Validation.Warnings))
	}
	if failed := report.Integrity.Failed(); len(failed) > 0 {
		fmt.Fprintf(w, "    %d integrity check(s) failed\n", len(failed))
	}
}

func decision(report *model.Report) string {
	if report.IsPublishable() {
		return "PUBLISHABLE"
	}
	return "BLOCKED"
}

func writeIssues(b *strings.Builder, title string, issues []model.Issue) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", title)
	for _, issue := range issues {
		if issue.Field != "" {
			fmt.Fprintf(b, "- `%s` %s (`%s`)\n", issue.Code, safe(issue.Message), safe(issue.Field))
		} else {
			fmt.Fprintf(b, "- `%s` %s\n", issue.Code, safe(issue.Message))
		}
	}
	b.WriteString("\n")
}

func linkStatus(l model.LinkResult) string {
	switch {
	case l.Disallowed:
		return "disallowed by robots.txt"
	case l.IsAccessible:
		return fmt.Sprintf("ok (%d)", l.StatusCode)
	case l.StatusCode > 0:
		return fmt.Sprintf("dead (%d)", l.StatusCode)
	default:
		return "unreachable"
	}
}

func linkNote(l model.LinkResult) string {
	if l.Error != "" {
		return l.Error
	}
	if l.RedirectURL != "" {
		return "redirects to " + l.RedirectURL
	}
	if l.Cached {
		return "cached"
	}
	return ""
}

// safe normalizes and escapes author-supplied text
func safe(s string) string {
	return integrity.EscapeHTML(integrity.NormalizeDisclaimerText(s))
}

// cell is safe text that fits on one table row
func cell(s string) string {
	s = strings.Join(strings.Fields(safe(s)), " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

// link renders a Markdown link only for safe http(s) URLs
func link(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	if !integrity.ValidateSourceURL(raw).Valid {
		return "_(unsafe URL omitted)_"
	}
	u := cell(strings.TrimSpace(raw))
	return fmt.Sprintf("[%s](%s)", u, strings.ReplaceAll(u, ")", "%29"))
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
