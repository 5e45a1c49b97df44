package normalizer

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/legallenshq/legal-lens-api/internal/models"
)

// ErrNoJSONFound indicates the model reply contained no {...} span at all.
var ErrNoJSONFound = errors.New("no JSON object found in model reply")

// ErrInvalidJSON indicates a {...} span was located but did not parse.
var ErrInvalidJSON = errors.New("model reply is not valid JSON")

// Normalize turns the model's free-text reply into a StructuredAnalysis.
//
// The reply is not guaranteed to be pure JSON: it may be wrapped in prose or
// markdown code fences. Normalize strips any wrapping, locates the outermost
// object span, and asserts top-level parseability. Individual fields are then
// decoded best-effort: missing or mistyped keys degrade to empty values and
// malformed clause entries are skipped. This is a structural gate only; the
// model is the quality gate.
func Normalize(reply string) (*models.StructuredAnalysis, error) {
	span, ok := extractObjectSpan(reply)
	if !ok {
		return nil, ErrNoJSONFound
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(span), &top); err != nil {
		return nil, ErrInvalidJSON
	}

	analysis := &models.StructuredAnalysis{
		RiskyClauses: []models.Clause{},
	}

	if raw, found := top["summary"]; found {
		_ = json.Unmarshal(raw, &analysis.Summary)
	}
	if raw, found := top["explanations"]; found {
		_ = json.Unmarshal(raw, &analysis.Explanations)
	}
	if raw, found := top["risky_clauses"]; found {
		analysis.RiskyClauses = decodeClauses(raw)
	}

	return analysis, nil
}

// decodeClauses decodes as many well-formed clause entries as it can,
// skipping elements that are not objects or fail to decode.
func decodeClauses(raw json.RawMessage) []models.Clause {
	clauses := []models.Clause{}

	var elements []json.RawMessage
	if err := json.Unmarshal(raw, &elements); err != nil {
		return clauses
	}

	for _, element := range elements {
		var clause models.Clause
		if err := json.Unmarshal(element, &clause); err != nil {
			continue
		}
		clause.RiskLevel = models.RiskLevel(strings.ToUpper(string(clause.RiskLevel)))
		clauses = append(clauses, clause)
	}

	return clauses
}

// extractObjectSpan strips code fences and returns the outermost {...} span.
func extractObjectSpan(reply string) (string, bool) {
	reply = stripCodeFences(reply)

	start := strings.Index(reply, "{")
	end := strings.LastIndex(reply, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}

	return reply[start : end+1], true
}

// stripCodeFences removes a surrounding markdown code block, fence language
// tag included, if one is present.
func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)

	if !strings.HasPrefix(content, "```") {
		return content
	}

	content = strings.TrimPrefix(content, "```")
	if newline := strings.Index(content, "\n"); newline != -1 {
		content = content[newline+1:]
	}

	if closing := strings.LastIndex(content, "```"); closing != -1 {
		content = content[:closing]
	}

	return strings.TrimSpace(content)
}
