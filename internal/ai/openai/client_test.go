package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/resume-lens/internal/ai"
)

type fakeCompletions struct {
	params []openai.ChatCompletionNewParams
	resp   *openai.ChatCompletion
	err    error
}

func (f *fakeCompletions) New(_ context.Context, body openai.ChatCompletionNewParams, _ ...option.RequestOption) (*openai.ChatCompletion, error) {
	f.params = append(f.params, body)
	return f.resp, f.err
}

func completion(content string) *openai.ChatCompletion {
	return &openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{{
			Message: openai.ChatCompletionMessage{Content: content},
		}},
	}
}

func TestGeneratorComplete(t *testing.T) {
	fake := &fakeCompletions{resp: completion("  {\"overallScore\": 80}\n")}
	g := newGenerator(fake, "gpt-4o", zap.NewNop(), 0)

	out, err := g.Complete(context.Background(), []ai.Message{
		ai.SystemMessage("be strict"),
		ai.UserMessage("resume"),
	}, ai.Options{Temperature: 0.4, MaxTokens: 1600})
	require.NoError(t, err)
	assert.Equal(t, `{"overallScore": 80}`, out)

	require.Len(t, fake.params, 1)
	params := fake.params[0]
	assert.EqualValues(t, "gpt-4o", params.Model)
	require.Len(t, params.Messages, 2)
	assert.NotNil(t, params.Messages[0].OfSystem)
	assert.NotNil(t, params.Messages[1].OfUser)
	assert.InDelta(t, 0.4, params.Temperature.Value, 1e-9)
	assert.EqualValues(t, 1600, params.MaxTokens.Value)
}

func TestGeneratorDefaults(t *testing.T) {
	g := newGenerator(&fakeCompletions{}, " ", nil, 0)
	assert.Equal(t, defaultModel, g.Model())
	assert.Equal(t, defaultMaxLogLength, g.maxLogLen)
}

func TestGeneratorErrors(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeCompletions
	}{
		{name: "transport", fake: &fakeCompletions{err: errors.New("boom")}},
		{name: "no choices", fake: &fakeCompletions{resp: &openai.ChatCompletion{}}},
		{name: "blank content", fake: &fakeCompletions{resp: completion("   ")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newGenerator(tt.fake, "", zap.NewNop(), 0)
			_, err := g.Complete(context.Background(), []ai.Message{ai.UserMessage("x")}, ai.Options{})
			require.Error(t, err)
			assert.Len(t, tt.fake.params, 1)
		})
	}
}

func TestNewGeneratorRequiresKey(t *testing.T) {
	_, err := NewGenerator("", "", "", zap.NewNop(), 0)
	require.Error(t, err)

	g, err := NewGenerator("sk-test", "http://localhost:1234/v1", "local-model", zap.NewNop(), 0)
	require.NoError(t, err)
	assert.Equal(t, "local-model", g.Model())
}
