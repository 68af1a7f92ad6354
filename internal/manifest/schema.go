package manifest

import (
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const schemaURL = "https://govgate.dev/schemas/manifest.json"

// manifestSchema constrains the shape of a manifest only. Missing or weak
// content is left to disclaimer validation so it surfaces as findings.
const manifestSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["disclaimer"],
  "additionalProperties": false,
  "properties": {
    "$schema": {"type": "string"},
    "page": {
      "type": "object",
      "properties": {
        "pageType": {"type": "string"},
        "pathname": {"type": "string"},
        "hasPricing": {"type": "boolean"},
        "hasMarketData": {"type": "boolean"},
        "hasCompetitorComparison": {"type": "boolean"},
        "hasDataset": {"type": "boolean"},
        "hasAIClaims": {"type": "boolean"},
        "hasPerformanceClaims": {"type": "boolean"},
        "hasROIEstimates": {"type": "boolean"},
        "hasCaseStudyMetrics": {"type": "boolean"}
      }
    },
    "disclaimer": {
      "type": "object",
      "properties": {
        "sources": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {
              "name": {"type": "string"},
              "url": {"type": "string"},
              "type": {"type": "string"},
              "access_date": {"type": "string"}
            }
          }
        },
        "lastUpdated": {"type": "string"},
        "methodologySummary": {"type": "string"},
        "methodologyUrl": {"type": "string"},
        "limitations": {"type": "array", "items": {"type": "string"}},
        "claimTypes": {"type": "array", "items": {"type": "string"}},
        "complianceRefs": {"type": "array", "items": {"type": "string"}},
        "approvalToken": {"type": "string"}
      }
    }
  }
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func schema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		c.Draft = jsonschema.Draft2020
		if err := c.AddResource(schemaURL, strings.NewReader(manifestSchema)); err != nil {
			compileErr = fmt.Errorf("add manifest schema: %w", err)
			return
		}
		compiled, compileErr = c.Compile(schemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile manifest schema: %w", compileErr)
		}
	})
	return compiled, compileErr
}

// checkShape validates a generic JSON document against the manifest schema
func checkShape(doc interface{}) error {
	s, err := schema()
	if err != nil {
		return err
	}
	if err := s.Validate(doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}
	return nil
}
