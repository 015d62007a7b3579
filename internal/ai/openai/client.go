package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/spigell/resume-lens/internal/ai"
	"github.com/spigell/resume-lens/internal/logger"
	"github.com/spigell/resume-lens/internal/utils"
)

const (
	defaultModel        = "gpt-4o-mini"
	defaultMaxLogLength = 200
)

type chatCompletions interface {
	New(ctx context.Context, body openai.ChatCompletionNewParams, opts ...option.RequestOption) (*openai.ChatCompletion, error)
}

// Generator sends chat completions to OpenAI or any API compatible with it.
type Generator struct {
	completions chatCompletions
	model       string
	logger      *zap.Logger
	maxLogLen   int
}

// NewGenerator builds a Generator. baseURL is optional and points the client at
// a compatible endpoint.
func NewGenerator(apiKey, baseURL, model string, log *zap.Logger, maxLogLength int) (*Generator, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, errors.New("openai api key is required")
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL = strings.TrimSpace(baseURL); baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(opts...)

	return newGenerator(&client.Chat.Completions, model, log, maxLogLength), nil
}

func newGenerator(completions chatCompletions, model string, log *zap.Logger, maxLogLength int) *Generator {
	if model = strings.TrimSpace(model); model == "" {
		model = defaultModel
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}

	return &Generator{
		completions: completions,
		model:       model,
		logger:      logger.WithCommonFields(log, ai.ProviderOpenAI, model),
		maxLogLen:   maxLogLength,
	}
}

func (g *Generator) Complete(ctx context.Context, messages []ai.Message, opts ai.Options) (string, error) {
	if g == nil || g.completions == nil {
		return "", errors.New("openai generator is not initialized")
	}
	if len(messages) == 0 {
		return "", errors.New("at least one message is required")
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(g.model),
		Messages: make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)),
	}
	if opts.Temperature > 0 {
		params.Temperature = openai.Float(opts.Temperature)
	}
	if opts.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(opts.MaxTokens))
	}

	promptLength := 0
	for _, m := range messages {
		switch m.Role {
		case ai.RoleSystem:
			params.Messages = append(params.Messages, openai.SystemMessage(m.Content))
		case ai.RoleAssistant:
			params.Messages = append(params.Messages, openai.AssistantMessage(m.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(m.Content))
		}
		promptLength += utf8.RuneCountInString(m.Content)
	}

	g.logger.Debug("openai chat completion request",
		zap.Int("messages", len(messages)),
		zap.Int("prompt_length", promptLength),
		zap.String("prompt_preview", utils.FlattenForLog(messages[len(messages)-1].Content, g.maxLogLen)),
	)

	completion, err := g.completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if completion == nil || len(completion.Choices) == 0 {
		return "", errors.New("no response from openai")
	}

	output := strings.TrimSpace(completion.Choices[0].Message.Content)
	if output == "" {
		return "", errors.New("openai returned empty content")
	}

	g.logger.Debug("openai chat completion response",
		zap.Int("response_length", utf8.RuneCountInString(output)),
		zap.String("finish_reason", completion.Choices[0].FinishReason),
		zap.String("response_preview", utils.FlattenForLog(output, g.maxLogLen)),
	)

	return output, nil
}

func (g *Generator) Model() string {
	if g == nil {
		return ""
	}
	return g.model
}
