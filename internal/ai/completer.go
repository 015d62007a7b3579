// Package ai describes the chat-completion collaborator used by the audit and
// annotation boundaries. Providers live in sub-packages.
package ai

import (
	"context"
	"strings"
)

// Role of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Supported providers.
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type Message struct {
	Role    Role
	Content string
}

// Options tune a single completion. Zero values leave the provider default.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// Completer sends a conversation to a language model and returns its text reply.
// Implementations perform exactly one request per call: no retry, no caching.
type Completer interface {
	Complete(ctx context.Context, messages []Message, opts Options) (string, error)
	Model() string
}

func SystemMessage(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

func UserMessage(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// SplitSystem joins all system messages into one instruction and returns the rest
// of the conversation in order.
func SplitSystem(messages []Message) (string, []Message) {
	var system []string
	rest := make([]Message, 0, len(messages))
	for _, m := range messages {
		if m.Role == RoleSystem {
			if text := strings.TrimSpace(m.Content); text != "" {
				system = append(system, text)
			}
			continue
		}
		rest = append(rest, m)
	}
	return strings.Join(system, "\n\n"), rest
}
