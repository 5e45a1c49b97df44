package models

// RiskLevel is the three-point severity assigned to a clause.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// Clause is one identified contractual provision with a plain-language
// explanation and its assessed risk.
type Clause struct {
	Title         string    `json:"title"`
	SourceExcerpt string    `json:"source_excerpt"`
	Explanation   string    `json:"explanation"`
	RiskLevel     RiskLevel `json:"risk_level"`
}

// StructuredAnalysis is the validated result of one document review.
// RiskyClauses is never nil once stored.
type StructuredAnalysis struct {
	Summary      string   `json:"summary"`
	RiskyClauses []Clause `json:"risky_clauses"`
	Explanations string   `json:"explanations"`
}

type AnalyzeRequest struct {
	File        []byte
	Filename    string
	ContentType string
}

type AnalyzeResponse struct {
	DocID string `json:"doc_id"`
}
