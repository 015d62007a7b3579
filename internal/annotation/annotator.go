package annotation

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
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
	operation = "annotate"

	systemPrompt = "You are a precise resume editor that returns span-level annotations for improvements. Always return STRICT minified JSON array of annotations."

	temperature = 0.2
	maxTokens   = 1400
)

// Annotator asks a language model for span annotations over a resume.
type Annotator struct {
	completer ai.Completer
	logger    *zap.Logger
	clip      bool
}

type Option func(*Annotator)

// WithClipping makes Annotate resolve overlapping spans with Clip instead of
// rejecting the reply.
func WithClipping() Option {
	return func(a *Annotator) {
		a.clip = true
	}
}

func NewAnnotator(completer ai.Completer, log *zap.Logger, opts ...Option) *Annotator {
	a := &Annotator{
		completer: completer,
		logger:    logger.WithFields(log),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Annotate returns validated spans for resumeText. The posting is optional.
// Replies that are not a valid span array yield a *ParseError with the raw
// reply; failed requests yield a *CallError. Nothing is retried.
func (a *Annotator) Annotate(ctx context.Context, resumeText string, p *job.Posting) ([]Span, error) {
	if a == nil || a.completer == nil {
		return nil, errors.New("annotator is not initialized")
	}
	if strings.TrimSpace(resumeText) == "" {
		return nil, errors.New("resume text is empty")
	}

	requestID := uuid.NewString()
	log := logger.WithRequest(a.logger, operation, requestID)

	messages := []ai.Message{
		ai.SystemMessage(systemPrompt),
		ai.UserMessage(BuildPrompt(resumeText, p)),
	}

	log.Info("requesting annotations", zap.Int("resume_length", utf8.RuneCountInString(resumeText)))

	raw, err := a.completer.Complete(ctx, messages, ai.Options{Temperature: temperature, MaxTokens: maxTokens})
	if err != nil {
		log.Warn("annotation request failed", zap.Error(err))
		return nil, &CallError{Message: "annotate resume", Cause: err}
	}

	spans, err := ParseSpans(raw)
	if err != nil {
		log.Warn("annotation reply rejected", zap.Error(err))
		return nil, err
	}

	if err := check(resumeText, spans, !a.clip); err != nil {
		log.Warn("annotation reply rejected", zap.Error(err))
		return nil, &ParseError{Raw: raw, Cause: err}
	}
	if a.clip {
		spans = Clip(spans)
	}

	log.Info("annotations received", zap.Int("spans", len(spans)))

	return spans, nil
}

// BuildPrompt renders the user message for an annotation request.
func BuildPrompt(resumeText string, p *job.Posting) string {
	return strings.NewReplacer(
		"{{RESUME_TEXT}}", resumeText,
		"{{JOB_CONTEXT}}", jobContext(p),
	).Replace(strings.TrimSpace(promptTemplate))
}

func jobContext(p *job.Posting) string {
	if p == nil {
		return "Job: (none)"
	}
	return fmt.Sprintf("Job: %s at %s\nReq: %s\nDesc: %s",
		p.Title, p.Company, strings.Join(p.Requirements, ", "), textnorm.StripTags(p.Description))
}
