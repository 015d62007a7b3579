package analysis

import (
	"context"
	"errors"
	"strconv"

	"go.uber.org/zap"

	"github.com/spigell/resume-lens/internal/annotation"
	"github.com/spigell/resume-lens/internal/audit"
	"github.com/spigell/resume-lens/internal/bestscore"
	"github.com/spigell/resume-lens/internal/grading"
	"github.com/spigell/resume-lens/internal/keywords"
	"github.com/spigell/resume-lens/internal/match"
)

// Step names.
const (
	StepKeywords = "keywords"
	StepMatch    = "match"
	StepGrade    = "grade"
	StepAnnotate = "annotate"
	StepAudit    = "audit"
)

var (
	errPostingRequired   = errors.New("job posting is required")
	errCompleterRequired = errors.New("ai completer is required")
)

// DefaultSteps returns every step in execution order.
func DefaultSteps(clipAnnotations bool) []Step {
	return []Step{
		NewKeywords(keywords.DisplayMax),
		NewMatch(),
		NewGrade(),
		NewAnnotate(clipAnnotations),
		NewAudit(),
	}
}

// toggle holds the enable state shared by all steps.
type toggle struct {
	disabled bool
	reason   string
}

func (t *toggle) Disable(reason string) {
	t.disabled = true
	t.reason = reason
}

func (t *toggle) IsEnabled() bool { return !t.disabled }

func (t *toggle) status(name string, details map[string]string) Status {
	return Status{Name: name, Enabled: !t.disabled, Reason: t.reason, Details: details}
}

type keywordsStep struct {
	toggle
	limit int
}

// NewKeywords creates the step that lists the posting's top keywords.
func NewKeywords(limit int) Step {
	return &keywordsStep{limit: limit}
}

func (s *keywordsStep) Name() string { return StepKeywords }

func (s *keywordsStep) Validate(in Input, _ Deps) error {
	if in.Posting == nil {
		return errPostingRequired
	}
	return nil
}

func (s *keywordsStep) Apply(_ context.Context, in Input, _ Deps, r *Report) error {
	r.Keywords = keywords.Extract(*in.Posting, s.limit)
	return nil
}

func (s *keywordsStep) Status() Status {
	return s.status(s.Name(), map[string]string{"max": strconv.Itoa(s.limit)})
}

type matchStep struct {
	toggle
}

// NewMatch creates the step that scores the resume against the posting.
func NewMatch() Step {
	return &matchStep{}
}

func (s *matchStep) Name() string { return StepMatch }

func (s *matchStep) Validate(in Input, _ Deps) error {
	if in.Posting == nil {
		return errPostingRequired
	}
	return nil
}

func (s *matchStep) Apply(_ context.Context, in Input, deps Deps, r *Report) error {
	result := match.Compute(in.ResumeText, *in.Posting)
	r.Match = &result
	deps.Logger.Debug("match computed",
		zap.Int("overall", result.OverallMatchPercent),
		zap.Int("missing_keywords", len(result.MissingKeywords)),
	)
	return nil
}

func (s *matchStep) Status() Status {
	return s.status(s.Name(), nil)
}

type gradeStep struct {
	toggle
}

// NewGrade creates the step that grades the resume on its own and, when a
// score keeper is configured, records the personal best.
func NewGrade() Step {
	return &gradeStep{}
}

func (s *gradeStep) Name() string { return StepGrade }

func (s *gradeStep) Validate(Input, Deps) error { return nil }

func (s *gradeStep) Apply(_ context.Context, in Input, deps Deps, r *Report) error {
	result := grading.Grade(in.ResumeText)
	r.Grade = &result

	if deps.Scores == nil {
		return nil
	}

	key := deps.ScoreKey
	if key == "" {
		key = bestscore.DefaultKey
	}
	best, improved, err := deps.Scores.Record(key, result.Breakdown.Overall)
	if err != nil {
		return err
	}
	r.BestScore = &BestScore{Best: best, Improved: improved}
	return nil
}

func (s *gradeStep) Status() Status {
	return s.status(s.Name(), nil)
}

type annotateStep struct {
	toggle
	clip bool
}

// NewAnnotate creates the step that asks the model for span annotations.
func NewAnnotate(clip bool) Step {
	return &annotateStep{clip: clip}
}

func (s *annotateStep) Name() string { return StepAnnotate }

func (s *annotateStep) Remote() bool { return true }

func (s *annotateStep) Validate(_ Input, deps Deps) error {
	if deps.Completer == nil {
		return errCompleterRequired
	}
	return nil
}

func (s *annotateStep) Apply(ctx context.Context, in Input, deps Deps, r *Report) error {
	var opts []annotation.Option
	if s.clip {
		opts = append(opts, annotation.WithClipping())
	}

	spans, err := annotation.NewAnnotator(deps.Completer, deps.Logger, opts...).Annotate(ctx, in.ResumeText, in.Posting)
	if err != nil {
		return err
	}
	r.Annotations = spans
	return nil
}

func (s *annotateStep) Status() Status {
	return s.status(s.Name(), map[string]string{"clip": strconv.FormatBool(s.clip)})
}

type auditStep struct {
	toggle
}

// NewAudit creates the step that requests an audit report.
func NewAudit() Step {
	return &auditStep{}
}

func (s *auditStep) Name() string { return StepAudit }

func (s *auditStep) Remote() bool { return true }

func (s *auditStep) Validate(in Input, deps Deps) error {
	if in.Posting == nil {
		return errPostingRequired
	}
	if deps.Completer == nil {
		return errCompleterRequired
	}
	return nil
}

func (s *auditStep) Apply(ctx context.Context, in Input, deps Deps, r *Report) error {
	outcome, err := audit.NewAssembler(deps.Completer, deps.Logger).Generate(ctx, in.ResumeText, *in.Posting)
	if err != nil {
		return err
	}
	if !outcome.OK() {
		r.AuditRaw = outcome.Raw
		return outcome.ParseErr
	}
	r.Audit = outcome.Report
	return nil
}

func (s *auditStep) Status() Status {
	return s.status(s.Name(), nil)
}
