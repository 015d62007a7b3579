package ai

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitSystem(t *testing.T) {
	system, rest := SplitSystem([]Message{
		SystemMessage("be precise"),
		UserMessage("hello"),
		SystemMessage("  "),
		SystemMessage("return json"),
		{Role: RoleAssistant, Content: "ok"},
	})

	assert.Equal(t, "be precise\n\nreturn json", system)
	require.Len(t, rest, 2)
	assert.Equal(t, RoleUser, rest[0].Role)
	assert.Equal(t, RoleAssistant, rest[1].Role)
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("boom")

	callErr := &CallError{Message: "openai chat completion", Cause: cause}
	assert.ErrorIs(t, callErr, cause)
	assert.Contains(t, callErr.Error(), "openai chat completion")

	var parseErr error = &ParseError{Raw: "not json", Cause: cause}
	var target *ParseError
	require.ErrorAs(t, parseErr, &target)
	assert.Equal(t, "not json", target.Raw)
	assert.Equal(t, "could not parse model reply", (&ParseError{}).Error())
}
