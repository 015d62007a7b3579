package grading

// Impact ranks how much a suggestion is expected to move the score.
type Impact string

const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// Suggestion is a static improvement hint for a weak sub-score.
type Suggestion struct {
	Category   string `json:"category"`
	Issue      string `json:"issue"`
	Suggestion string `json:"suggestion"`
	Impact     Impact `json:"impact"`
}

type rule struct {
	threshold int
	score     func(ScoreBreakdown) int
	template  Suggestion
}

var rules = []rule{
	{
		threshold: 80,
		score:     func(b ScoreBreakdown) int { return b.ATSCompatibility },
		template: Suggestion{
			Category:   "ATS Compatibility",
			Issue:      "Your resume may not pass ATS screening",
			Suggestion: "Remove special characters, use standard bullet points, and avoid complex formatting",
			Impact:     ImpactHigh,
		},
	},
	{
		threshold: 60,
		score:     func(b ScoreBreakdown) int { return b.KeywordDensity },
		template: Suggestion{
			Category:   "Keywords",
			Issue:      "Low keyword density",
			Suggestion: "Add more relevant technical terms and action verbs",
			Impact:     ImpactHigh,
		},
	},
	{
		threshold: 70,
		score:     func(b ScoreBreakdown) int { return b.Formatting },
		template: Suggestion{
			Category:   "Formatting",
			Issue:      "Inconsistent formatting",
			Suggestion: "Use consistent bullet points and section headers",
			Impact:     ImpactMedium,
		},
	},
	{
		threshold: 70,
		score:     func(b ScoreBreakdown) int { return b.ExperienceHighlight },
		template: Suggestion{
			Category:   "Experience",
			Issue:      "Missing quantified achievements",
			Suggestion: "Add numbers, percentages, and specific results to your experience",
			Impact:     ImpactHigh,
		},
	},
	{
		threshold: 60,
		score:     func(b ScoreBreakdown) int { return b.SkillsRelevance },
		template: Suggestion{
			Category:   "Skills",
			Issue:      "Limited relevant skills mentioned",
			Suggestion: "Include more technical skills and soft skills relevant to your target role",
			Impact:     ImpactMedium,
		},
	},
}

// Suggest returns one suggestion per sub-score below its threshold, in a fixed order.
func Suggest(b ScoreBreakdown) []Suggestion {
	out := make([]Suggestion, 0, len(rules))
	for _, r := range rules {
		if r.score(b) < r.threshold {
			out = append(out, r.template)
		}
	}
	return out
}
