package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/govgate/internal/gate"
	"github.com/ppiankov/govgate/internal/manifest"
	"github.com/ppiankov/govgate/internal/model"
)

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

const approvedToken = "release-2025-approved"

func newTestPipeline(t *testing.T, mutate func(cfg *model.Config)) *Pipeline {
	t.Helper()
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.HTTP.Timeout = 5 * time.Second
	if mutate != nil {
		mutate(cfg)
	}
	p := NewPipeline(cfg, gate.NewStaticAllowlist([]string{approvedToken}), nil)
	p.Now = func() time.Time { return fixedNow }
	return p
}

func researchManifest(token string) *manifest.Manifest {
	return &manifest.Manifest{
		Page: model.PageMeta{PageType: model.PageResearch, Pathname: "/research/benchmarks"},
		Disclaimer: model.Disclaimer{
			Sources: []model.DataSource{
				{Name: "BLS", URL: "https://bls.gov/data", Type: model.SourceExternal, AccessDate: "2025-06-01"},
			},
			LastUpdated:        "2025-06-01",
			MethodologySummary: strings.Repeat("word ", 110),
			Limitations:        []string{"Aggregated data"},
			ClaimTypes:         []model.ClaimType{model.ClaimDataset},
			ApprovalToken:      token,
		},
	}
}

func TestEvaluate_ApprovedResearchPage(t *testing.T) {
	p := newTestPipeline(t, nil)

	report, err := p.Evaluate(context.Background(), researchManifest(approvedToken), "research.yaml")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if !report.Gate.CanPublish {
		t.Fatalf("Expected publishable, got %+v", report.Gate)
	}
	if !report.Gate.RequiresApproval {
		t.Error("Expected research page to require approval")
	}
	want := []string{model.ReasonApprovalTokenValid, model.ReasonAllChecksPassed}
	if strings.Join(report.Gate.ReasonCodes, ",") != strings.Join(want, ",") {
		t.Errorf("ReasonCodes = %v, want %v", report.Gate.ReasonCodes, want)
	}

	if report.Subject != "/research/benchmarks" || report.Location != "research.yaml" {
		t.Errorf("Unexpected subject/location: %q %q", report.Subject, report.Location)
	}
	if !report.EvaluatedAt.Equal(fixedNow) {
		t.Errorf("EvaluatedAt = %v, want %v", report.EvaluatedAt, fixedNow)
	}
	if report.Staleness.Level != model.StaleCurrent || report.Staleness.DaysSinceUpdate != 14 {
		t.Errorf("Unexpected staleness: %+v", report.Staleness)
	}
	if !report.Validation.OK {
		t.Errorf("Expected validation OK, got errors %v", report.Validation.Errors)
	}
	if !report.Integrity.Valid {
		t.Errorf("Expected integrity valid, got %v", report.Integrity.Failed())
	}
	if _, err := uuid.Parse(report.RunID); err != nil {
		t.Errorf("RunID %q is not a UUID: %v", report.RunID, err)
	}
	if report.Fingerprint == "" {
		t.Error("Expected fingerprint")
	}
	if report.Links != nil || report.Brief != nil {
		t.Error("Expected no link audit or brief when disabled")
	}
}

func TestEvaluate_MissingToken(t *testing.T) {
	p := newTestPipeline(t, nil)

	report, err := p.Evaluate(context.Background(), researchManifest(""), "research.yaml")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if report.Gate.CanPublish {
		t.Fatal("Expected blocked")
	}
	if !report.Gate.HasReason(model.ReasonMissingApprovalToken) || !report.Gate.HasReason(model.ReasonHighRiskClaimsDetected) {
		t.Errorf("Unexpected reasons: %v", report.Gate.ReasonCodes)
	}
}

func TestEvaluate_StructuralErrorsBlock(t *testing.T) {
	p := newTestPipeline(t, nil)

	m := researchManifest(approvedToken)
	m.Disclaimer.LastUpdated = "not-a-date"
	m.Disclaimer.Sources = append(m.Disclaimer.Sources,
		model.DataSource{Name: "Widget", URL: "javascript:alert(1)", Type: "rumor", AccessDate: "yesterday"})

	report, err := p.Evaluate(context.Background(), m, "research.yaml")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if !report.Gate.CanPublish {
		t.Fatalf("Expected the gate alone to pass, got %v", report.Gate.ReasonCodes)
	}
	if report.Publishable || report.IsPublishable() {
		t.Fatal("Expected structural errors to block publication")
	}
	if got := report.DecisionReasons(); len(got) != 1 || got[0] != model.ReasonStructuralErrors {
		t.Errorf("DecisionReasons = %v, want [%s]", got, model.ReasonStructuralErrors)
	}

	codes := make(map[string]bool)
	for _, issue := range report.StructuralErrors() {
		codes[issue.Code] = true
	}
	for _, want := range []string{model.CodeInvalidLastUpdated, model.CodeInvalidSourceURL, model.CodeInvalidSourceType, model.CodeInvalidAccessDate} {
		if !codes[want] {
			t.Errorf("Expected %s among structural errors, got %v", want, report.StructuralErrors())
		}
	}
	if codes[model.CodeStaleDataError] {
		t.Error("Staleness must not count as a structural error")
	}
}

func TestEvaluate_StaleDataStaysPublishable(t *testing.T) {
	p := newTestPipeline(t, nil)

	m := researchManifest(approvedToken)
	m.Disclaimer.LastUpdated = fixedNow.AddDate(0, 0, -200).Format("2006-01-02")

	report, err := p.Evaluate(context.Background(), m, "research.yaml")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if report.Validation.OK {
		t.Error("Expected a staleness error in validation")
	}
	if !report.Publishable || !report.IsPublishable() {
		t.Fatalf("Expected stale data to stay publishable, got %v %v", report.Gate.ReasonCodes, report.Validation.Errors)
	}
	if !report.Gate.HasReason(model.ReasonStaleDataWarning) {
		t.Errorf("Expected %s, got %v", model.ReasonStaleDataWarning, report.Gate.ReasonCodes)
	}
}

func TestEvaluate_FingerprintTracksDisclaimer(t *testing.T) {
	p := newTestPipeline(t, nil)

	a, err := p.Evaluate(context.Background(), researchManifest(approvedToken), "a")
	if err != nil {
		t.Fatal(err)
	}
	b, err := p.Evaluate(context.Background(), researchManifest(approvedToken), "b")
	if err != nil {
		t.Fatal(err)
	}
	if a.Fingerprint != b.Fingerprint {
		t.Error("Expected identical disclaimers to share a fingerprint")
	}
	if a.RunID == b.RunID {
		t.Error("Expected distinct run IDs")
	}

	changed := researchManifest(approvedToken)
	changed.Disclaimer.Limitations = append(changed.Disclaimer.Limitations, "Self-reported")
	c, err := p.Evaluate(context.Background(), changed, "c")
	if err != nil {
		t.Fatal(err)
	}
	if c.Fingerprint == a.Fingerprint {
		t.Error("Expected a changed disclaimer to get a new fingerprint")
	}
}

func TestEvaluate_NilManifest(t *testing.T) {
	if _, err := newTestPipeline(t, nil).Evaluate(context.Background(), nil, ""); err == nil {
		t.Fatal("Expected error for nil manifest")
	}
}

func TestEvaluate_LinkAuditIsAdvisory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	p := newTestPipeline(t, func(cfg *model.Config) {
		cfg.LinkCheck.Enabled = true
		cfg.LinkCheck.RespectRobots = false
		cfg.RateLimiting.RequestsPerSecond = 0
	})

	m := researchManifest(approvedToken)
	m.Disclaimer.Sources[0].URL = server.URL + "/gone"

	report, err := p.Evaluate(context.Background(), m, "research.yaml")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(report.Links) != 1 {
		t.Fatalf("Expected 1 link result, got %d", len(report.Links))
	}
	if !report.Links[0].IsDead {
		t.Errorf("Expected dead link, got %+v", report.Links[0])
	}
	if !report.Gate.CanPublish {
		t.Error("Expected a dead source link not to change the publish decision")
	}
}

func TestEvaluateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "service.yaml")
	content := `page:
  pageType: service
  pathname: /services/seo
disclaimer:
  sources: []
  lastUpdated: "2025-06-10"
  methodologySummary: Prices come from our published rate card.
  limitations:
    - Pricing is an estimate
  claimTypes: [pricing]
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	report, err := newTestPipeline(t, nil).EvaluateFile(context.Background(), path)
	if err != nil {
		t.Fatalf("EvaluateFile: %v", err)
	}
	if !report.Gate.CanPublish || report.Gate.RequiresApproval {
		t.Errorf("Expected low-risk pricing claim to publish without approval, got %+v", report.Gate)
	}
	if report.Location != path {
		t.Errorf("Location = %q, want %q", report.Location, path)
	}
}

func TestEvaluateFile_Missing(t *testing.T) {
	_, err := newTestPipeline(t, nil).EvaluateFile(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Expected error for missing file")
	}
}

func TestScanURL_DetectedFlagsRaiseRisk(t *testing.T) {
	page := `<html><head>
<script type="application/vnd.govgate+json">
{"page": {"pageType": "service"},
 "disclaimer": {"sources": [], "lastUpdated": "2025-06-10",
   "methodologySummary": "Rate card.", "limitations": ["Estimates"], "claimTypes": ["pricing"]}}
</script></head>
<body><p>We doubled traffic for every team.</p></body></html>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = fmt.Fprint(w, page)
	}))
	defer server.Close()

	report, err := newTestPipeline(t, nil).ScanURL(context.Background(), server.URL+"/services/seo")
	if err != nil {
		t.Fatalf("ScanURL: %v", err)
	}

	if !report.Page.HasPerformanceClaims {
		t.Error("Expected performance flag detected from page text")
	}
	if report.Subject != "/services/seo" {
		t.Errorf("Subject = %q, want /services/seo", report.Subject)
	}
	if report.Gate.CanPublish || !report.Gate.HasReason(model.ReasonMissingApprovalToken) {
		t.Errorf("Expected detected performance claims to require approval, got %+v", report.Gate)
	}
}

func TestScanURL_NoManifest(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, "<html><body>plain</body></html>")
	}))
	defer server.Close()

	if _, err := newTestPipeline(t, nil).ScanURL(context.Background(), server.URL); err == nil {
		t.Fatal("Expected error for page without manifest")
	}
}

func TestRenderReport_WritesFiles(t *testing.T) {
	p := newTestPipeline(t, nil)
	report, err := p.Evaluate(context.Background(), researchManifest(approvedToken), "research.yaml")
	if err != nil {
		t.Fatal(err)
	}
	report.Brief = &model.Brief{Enabled: true, Provider: "openai", SummaryMD: "Looks complete."}

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "out", "report.json")
	mdPath := filepath.Join(dir, "out", "report.md")

	if err := p.RenderReport(report, jsonPath, mdPath, false); err != nil {
		t.Fatalf("RenderReport: %v", err)
	}

	for _, path := range []string{jsonPath, mdPath, filepath.Join(dir, "out", "report.brief.md")} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("Expected %s to exist: %v", path, err)
		}
	}
}
