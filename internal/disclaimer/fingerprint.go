package disclaimer

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/gowebpki/jcs"
	"github.com/ppiankov/govgate/internal/model"
)

// Fingerprint identifies a disclaimer version: the sha256 of its RFC 8785
// canonical JSON. Any change to sources, dates or text yields a new value.
func Fingerprint(d model.Disclaimer) (string, error) {
	raw, err := json.Marshal(normalizeSlices(d))
	if err != nil {
		return "", fmt.Errorf("marshal disclaimer: %w", err)
	}

	canonical, err := jcs.Transform(raw)
	if err != nil {
		return "", fmt.Errorf("canonicalize disclaimer: %w", err)
	}

	sum := sha256.Sum256(canonical)
	return "sha256:" + hex.EncodeToString(sum[:]), nil
}

// normalizeSlices makes nil and empty slices encode identically
func normalizeSlices(d model.Disclaimer) model.Disclaimer {
	if d.Sources == nil {
		d.Sources = []model.DataSource{}
	}
	if d.Limitations == nil {
		d.Limitations = []string{}
	}
	if d.ClaimTypes == nil {
		d.ClaimTypes = []model.ClaimType{}
	}
	return d
}
