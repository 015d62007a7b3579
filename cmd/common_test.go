package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spigell/resume-lens/internal/annotation"
	"github.com/spigell/resume-lens/internal/bestscore"
)

func TestReadResume(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resume.txt")
	require.NoError(t, os.WriteFile(path, []byte("Experience\n- Built APIs"), 0o644))

	text, err := readResume(path, nil)
	require.NoError(t, err)
	assert.Equal(t, "Experience\n- Built APIs", text)

	text, err = readResume("-", strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin", text)

	_, err = readResume("", nil)
	require.Error(t, err)

	_, err = readResume("-", strings.NewReader("  \n"))
	require.Error(t, err)

	_, err = readResume(filepath.Join(t.TempDir(), "missing.txt"), nil)
	require.Error(t, err)
}

func newJobCommand(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	cmd := &cobra.Command{Use: "test"}
	addJobFlags(cmd)
	require.NoError(t, cmd.Flags().Parse(args))
	return cmd
}

func TestLoadPosting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "job.yaml")
	require.NoError(t, os.WriteFile(path, []byte("title: Go Developer\ncompany: Acme\nrequirements:\n  - go\n"), 0o644))

	posting, err := loadPosting(context.Background(), newJobCommand(t, "--job", path), &Config{}, zap.NewNop())
	require.NoError(t, err)
	require.NotNil(t, posting)
	assert.Equal(t, "Go Developer", posting.Title)
	assert.Equal(t, []string{"go"}, posting.Requirements)

	posting, err = loadPosting(context.Background(), newJobCommand(t), &Config{}, zap.NewNop())
	require.NoError(t, err)
	assert.Nil(t, posting)

	_, err = loadPosting(context.Background(), newJobCommand(t, "--job", path, "--hh-vacancy", "1"), &Config{}, zap.NewNop())
	require.Error(t, err)

	_, err = loadPosting(context.Background(), newJobCommand(t, "--hh-vacancy", "https://hh.ru/employer/1"), &Config{}, zap.NewNop())
	require.Error(t, err)
}

func TestNewCompleter(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := newCompleter(context.Background(), nil, zap.NewNop())
	require.Error(t, err)

	_, err = newCompleter(context.Background(), &AIConfig{Provider: "claude"}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported ai provider")

	_, err = newCompleter(context.Background(), &AIConfig{Provider: "openai"}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")

	_, err = newCompleter(context.Background(), &AIConfig{Provider: "Gemini"}, zap.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")

	completer, err := newCompleter(context.Background(), &AIConfig{
		OpenAI: &OpenAIConfig{APIKey: "sk-test", Model: "gpt-4o"},
	}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", completer.Model())

	t.Setenv("OPENAI_API_KEY", "sk-env")
	completer, err = newCompleter(context.Background(), &AIConfig{Provider: "openai"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", completer.Model())
}

func TestAIContext(t *testing.T) {
	ctx, cancel := aiContext(context.Background(), &AIConfig{Timeout: time.Minute})
	defer cancel()
	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(time.Minute), deadline, 5*time.Second)

	ctx, cancel = aiContext(context.Background(), nil)
	defer cancel()
	_, ok = ctx.Deadline()
	assert.False(t, ok)
}

func TestNewBestScoreStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "best.json")

	store, key, err := newBestScoreStore(&BestScoreConfig{File: path, Key: " me "})
	require.NoError(t, err)
	assert.Equal(t, path, store.Path())
	assert.Equal(t, "me", key)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	store, key, err = newBestScoreStore(nil)
	require.NoError(t, err)
	assert.Equal(t, bestscore.DefaultKey, key)
	assert.Equal(t, "best-score.json", filepath.Base(store.Path()))
}

func TestConfigDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	var config *Config
	require.NoError(t, v.Unmarshal(&config))
	require.NotNil(t, config.AI)
	assert.Equal(t, "openai", config.AI.Provider)
	assert.Equal(t, 90*time.Second, config.AI.Timeout)
	assert.Equal(t, "gpt-4o-mini", config.AI.OpenAI.Model)
	assert.Equal(t, "gemini-2.5-flash", config.AI.Gemini.Model)
	assert.Equal(t, bestscore.DefaultKey, config.BestScore.Key)
	assert.NotEmpty(t, config.Headhunter.UserAgent)
}

func TestChooseReplacementWithoutCandidates(t *testing.T) {
	text := "Managed team"
	edited, applied, err := chooseReplacement(text, []annotation.Span{{Start: 0, End: 7, Category: annotation.CategoryImpact}})
	require.NoError(t, err)
	assert.False(t, applied)
	assert.Equal(t, text, edited)
}

func TestReplacementLabel(t *testing.T) {
	replacement := "Led"
	label := replacementLabel("Managed\nteam", annotation.Span{
		Start:       0,
		End:         7,
		Category:    annotation.CategoryImpact,
		Message:     "Weak\nverb",
		Replacement: &replacement,
	})
	assert.Equal(t, `[impact] Weak verb: "Managed" -> "Led"`, label)
}

func TestVersionCommand(t *testing.T) {
	var buf bytes.Buffer
	versionCmd.SetOut(&buf)
	versionCmd.Run(versionCmd, nil)
	assert.Equal(t, "resume-lens version: unknown\n", buf.String())
}
