// Package analysis runs the engine components over one resume as an ordered
// list of steps and collects their results into a single Report.
package analysis

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-lens/internal/ai"
	"github.com/spigell/resume-lens/internal/annotation"
	"github.com/spigell/resume-lens/internal/audit"
	"github.com/spigell/resume-lens/internal/grading"
	"github.com/spigell/resume-lens/internal/job"
	"github.com/spigell/resume-lens/internal/logger"
	"github.com/spigell/resume-lens/internal/match"
)

// Step is a single analysis stage.
type Step interface {
	Name() string
	Disable(reason string)
	IsEnabled() bool

	Validate(in Input, deps Deps) error
	Apply(ctx context.Context, in Input, deps Deps, r *Report) error
}

// Input is what every step reads. Posting is optional for steps that do not
// compare against a job.
type Input struct {
	ResumeText string
	Posting    *job.Posting
}

// ScoreKeeper persists personal-best grading scores.
type ScoreKeeper interface {
	Record(key string, score int) (int, bool, error)
}

// Deps aggregates dependencies shared across steps.
type Deps struct {
	Logger    *zap.Logger
	Completer ai.Completer
	Scores    ScoreKeeper
	ScoreKey  string
}

// BestScore is the outcome of comparing a grade with the stored best.
type BestScore struct {
	Best     int  `json:"best"`
	Improved bool `json:"improved"`
}

// Report collects the output of every step that ran. Failures maps step names
// to the error that stopped them.
type Report struct {
	Keywords    []string          `json:"keywords,omitempty"`
	Match       *match.Result     `json:"match,omitempty"`
	Grade       *grading.Result   `json:"grade,omitempty"`
	BestScore   *BestScore        `json:"bestScore,omitempty"`
	Annotations []annotation.Span `json:"annotations,omitempty"`
	Audit       *audit.Report     `json:"audit,omitempty"`
	AuditRaw    string            `json:"auditRaw,omitempty"`
	Failures    map[string]string `json:"failures,omitempty"`
}

// Status represents runtime information about a step.
type Status struct {
	Name    string
	Enabled bool
	Reason  string
	Details map[string]string
}

type statusProvider interface {
	Status() Status
}

// remote is implemented by steps that call the language model. They run
// concurrently after the local steps.
type remote interface {
	Remote() bool
}

func isRemote(step Step) bool {
	r, ok := step.(remote)
	return ok && r.Remote()
}

// DisableByName marks a step with the provided name as disabled while keeping it in the list.
func DisableByName(steps []Step, name, reason string) {
	for _, step := range steps {
		if step.Name() == name {
			step.Disable(reason)
		}
	}
}

// Run validates every enabled step, then applies local steps in order and
// remote steps concurrently. A failing step is recorded in Report.Failures and
// does not stop the others; only validation errors abort the run.
func Run(ctx context.Context, in Input, deps Deps, steps []Step) (*Report, error) {
	deps.Logger = logger.WithFields(deps.Logger)

	for _, step := range steps {
		if !step.IsEnabled() {
			continue
		}
		if err := step.Validate(in, deps); err != nil {
			return nil, fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	report := &Report{}
	var mu sync.Mutex
	apply := func(ctx context.Context, step Step) {
		started := time.Now()
		err := step.Apply(ctx, in, deps, report)
		if err != nil {
			deps.Logger.Warn("analysis step failed", zap.String("name", step.Name()), zap.Error(err))
			mu.Lock()
			if report.Failures == nil {
				report.Failures = map[string]string{}
			}
			report.Failures[step.Name()] = err.Error()
			mu.Unlock()
			return
		}
		deps.Logger.Info("analysis step", zap.String("name", step.Name()), zap.Duration("took", time.Since(started)))
	}

	var remoteSteps []Step
	for _, step := range steps {
		if !step.IsEnabled() {
			deps.Logger.Info("analysis step disabled", zap.String("name", step.Name()))
			continue
		}
		if isRemote(step) {
			remoteSteps = append(remoteSteps, step)
			continue
		}
		apply(ctx, step)
	}

	var g errgroup.Group
	for _, step := range remoteSteps {
		g.Go(func() error {
			apply(ctx, step)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return report, nil
}

// Describe returns status entries for the provided steps.
func Describe(steps []Step) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}

		statuses = append(statuses, Status{
			Name:    step.Name(),
			Enabled: step.IsEnabled(),
		})
	}
	return statuses
}
