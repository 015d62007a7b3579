package audit

import (
	"context"
	_ "embed"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spigell/resume-lens/internal/ai"
	"github.com/spigell/resume-lens/internal/job"
	"github.com/spigell/resume-lens/internal/logger"
	"github.com/spigell/resume-lens/internal/textnorm"
)

//go:embed prompt.md
var promptTemplate string

const (
	operation = "audit"

	systemPrompt = "You are a senior resume auditor specializing in ATS optimization and outcome-focused writing."

	temperature = 0.4
	maxTokens   = 1600

	defaultLocation = "Remote"
)

// Assembler requests audit reports from a completer. Each Generate call makes
// exactly one request; callers own deadlines and deduplication.
type Assembler struct {
	completer ai.Completer
	logger    *zap.Logger
}

func NewAssembler(completer ai.Completer, log *zap.Logger) *Assembler {
	return &Assembler{
		completer: completer,
		logger:    logger.WithFields(log),
	}
}

// Generate sends the audit prompt and parses the reply. A reply that does not
// match the schema is not an error: it is returned in Outcome.ParseErr with the
// raw text. Request failures return a *CallError.
func (a *Assembler) Generate(ctx context.Context, resumeText string, p job.Posting) (*Outcome, error) {
	if a == nil || a.completer == nil {
		return nil, errors.New("audit assembler is not initialized")
	}

	requestID := uuid.NewString()
	log := logger.WithRequest(a.logger, operation, requestID)

	messages := []ai.Message{
		ai.SystemMessage(systemPrompt),
		ai.UserMessage(BuildPrompt(resumeText, p)),
	}

	log.Info("requesting audit",
		zap.String("job_title", p.Title),
		zap.String("job_company", p.Company),
		zap.Int("resume_length", utf8.RuneCountInString(resumeText)),
	)

	raw, err := a.completer.Complete(ctx, messages, ai.Options{Temperature: temperature, MaxTokens: maxTokens})
	if err != nil {
		log.Warn("audit request failed", zap.Error(err))
		return nil, &CallError{Message: "generate audit", Cause: err}
	}

	outcome := &Outcome{Raw: raw, RequestID: requestID}

	report, err := ParseReport(raw)
	if err != nil {
		var perr *ParseError
		if !errors.As(err, &perr) {
			return nil, err
		}
		log.Warn("audit reply could not be parsed", zap.Error(perr))
		outcome.ParseErr = perr
		return outcome, nil
	}

	outcome.Report = report
	log.Info("audit received", zap.Int("actions", len(report.PrioritizedActions)))

	return outcome, nil
}

// BuildPrompt renders the user message for an audit request.
func BuildPrompt(resumeText string, p job.Posting) string {
	location := p.Location
	if strings.TrimSpace(location) == "" {
		location = defaultLocation
	}

	return strings.NewReplacer(
		"{{JOB_TITLE}}", p.Title,
		"{{JOB_COMPANY}}", p.Company,
		"{{JOB_LOCATION}}", location,
		"{{JOB_REQUIREMENTS}}", strings.Join(p.Requirements, ", "),
		"{{JOB_DESCRIPTION}}", textnorm.StripTags(p.Description),
		"{{RESUME_TEXT}}", resumeText,
	).Replace(strings.TrimSpace(promptTemplate))
}
