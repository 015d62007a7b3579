// Package audit asks a language model for a structured resume audit against a
// job posting and accepts only replies that match the report schema exactly.
package audit

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/spigell/resume-lens/internal/ai"
)

// Impact ranks a prioritized action.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

type Action struct {
	Action string `json:"action"`
	Impact Impact `json:"impact"`
}

// Report is the fixed-shape audit produced for one request.
type Report struct {
	Summary                    string   `json:"summary"`
	ATSFindings                []string `json:"atsFindings"`
	KeywordGaps                []string `json:"keywordGaps"`
	AccomplishmentsSuggestions []string `json:"accomplishmentsSuggestions"`
	BulletRewrites             []string `json:"bulletRewrites"`
	FormattingRecommendations  []string `json:"formattingRecommendations"`
	PrioritizedActions         []Action `json:"prioritizedActions"`
}

// Outcome is the result of one Generate call. Exactly one of Report and
// ParseErr is set; Raw always holds the model reply.
type Outcome struct {
	Report    *Report
	Raw       string
	ParseErr  *ParseError
	RequestID string
}

// OK reports whether the reply was parsed into a Report.
func (o *Outcome) OK() bool {
	return o != nil && o.Report != nil
}

// Document returns what a user downloads: the indented report, or the raw
// reply when it could not be parsed.
func (o *Outcome) Document() ([]byte, error) {
	if o == nil {
		return nil, nil
	}
	if o.Report != nil {
		return json.MarshalIndent(o.Report, "", "  ")
	}
	return []byte(o.Raw), nil
}

var spaceRe = regexp.MustCompile(`\s+`)

// FileName suggests a download name derived from the company.
func FileName(company string) string {
	slug := strings.ToLower(spaceRe.ReplaceAllString(company, "-"))
	if slug == "" {
		slug = "report"
	}
	return "resume-audit-" + slug + ".json"
}

type (
	// ParseError carries the raw reply that did not match the report schema.
	ParseError = ai.ParseError
	// CallError wraps a failed completion request.
	CallError = ai.CallError
)
