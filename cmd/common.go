package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-lens/internal/ai"
	"github.com/spigell/resume-lens/internal/ai/gemini"
	"github.com/spigell/resume-lens/internal/ai/openai"
	"github.com/spigell/resume-lens/internal/bestscore"
	"github.com/spigell/resume-lens/internal/job"
	"github.com/spigell/resume-lens/internal/jobsource/headhunter"
	"github.com/spigell/resume-lens/internal/logger"
	"github.com/spigell/resume-lens/internal/secrets"
)

const (
	flagResume    = "resume"
	flagJob       = "job"
	flagHHVacancy = "hh-vacancy"
	flagOut       = "out"
	flagClip      = "clip"
	flagTrack     = "track"
)

// setup builds the logger and reads the configuration. Every command starts here.
func setup() (*zap.Logger, *Config) {
	logger, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}
	if config == nil {
		logger.Fatal("config is required")
	}

	return logger, config
}

func addResumeFlag(cmd *cobra.Command) {
	cmd.Flags().StringP(flagResume, "r", "", "path to the resume text file, '-' reads stdin")
}

func addJobFlags(cmd *cobra.Command) {
	cmd.Flags().String(flagJob, "", "path to a job posting file (yaml or json)")
	cmd.Flags().String(flagHHVacancy, "", "hh.ru vacancy id or url")
}

// readResume loads the resume text from a file or stdin.
func readResume(path string, stdin io.Reader) (string, error) {
	path = strings.TrimSpace(path)
	var (
		data []byte
		err  error
	)
	switch path {
	case "":
		return "", errors.New("resume is required (use --resume)")
	case "-":
		data, err = io.ReadAll(stdin)
	default:
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("reading resume: %w", err)
	}

	text := string(data)
	if strings.TrimSpace(text) == "" {
		return "", errors.New("resume is empty")
	}
	return text, nil
}

// loadPosting returns the posting selected by --job or --hh-vacancy, or nil
// when neither flag is set.
func loadPosting(ctx context.Context, cmd *cobra.Command, config *Config, logger *zap.Logger) (*job.Posting, error) {
	file, _ := cmd.Flags().GetString(flagJob)
	vacancy, _ := cmd.Flags().GetString(flagHHVacancy)

	switch {
	case file != "" && vacancy != "":
		return nil, fmt.Errorf("--%s and --%s are mutually exclusive", flagJob, flagHHVacancy)
	case file != "":
		return job.LoadFile(file)
	case vacancy != "":
		id, err := headhunter.ParseVacancyID(vacancy)
		if err != nil {
			return nil, err
		}
		return newHeadhunter(config.Headhunter, logger).GetVacancy(ctx, id)
	default:
		return nil, nil
	}
}

func newHeadhunter(cfg *HeadhunterConfig, logger *zap.Logger) *headhunter.Client {
	if cfg == nil {
		cfg = &HeadhunterConfig{}
	}

	token, err := secrets.Load(secrets.Source{
		Name:     "headhunter token",
		Value:    cfg.Token,
		File:     cfg.TokenFile,
		Env:      "HH_TOKEN",
		Optional: true,
	})
	if err != nil {
		logger.Warn("ignoring headhunter token", zap.Error(err))
	}

	hh := headhunter.New(logger, token)
	if cfg.UserAgent != "" {
		hh.UserAgent = cfg.UserAgent
	}
	return hh
}

// newCompleter builds the configured chat-completion provider.
func newCompleter(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Completer, error) {
	if cfg == nil {
		return nil, errors.New("ai configuration is required")
	}

	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))
	switch provider {
	case "", ai.ProviderOpenAI:
		openaiCfg := cfg.OpenAI
		if openaiCfg == nil {
			openaiCfg = &OpenAIConfig{}
		}
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "openai api key",
			Value: openaiCfg.APIKey,
			File:  openaiCfg.APIKeyFile,
			Env:   "OPENAI_API_KEY",
		})
		if err != nil {
			return nil, err
		}
		generator, err := openai.NewGenerator(apiKey, openaiCfg.BaseURL, openaiCfg.Model, logger, cfg.MaxLogLength)
		if err != nil {
			return nil, err
		}
		return generator, nil
	case ai.ProviderGemini:
		geminiCfg := cfg.Gemini
		if geminiCfg == nil {
			geminiCfg = &GeminiConfig{}
		}
		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: geminiCfg.APIKey,
			File:  geminiCfg.APIKeyFile,
			Env:   "GEMINI_API_KEY",
		})
		if err != nil {
			return nil, err
		}
		generator, err := gemini.NewGenerator(ctx, apiKey, geminiCfg.Model, logger, cfg.MaxLogLength)
		if err != nil {
			return nil, err
		}
		return generator, nil
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

// aiContext bounds a model call with the configured timeout.
func aiContext(ctx context.Context, cfg *AIConfig) (context.Context, context.CancelFunc) {
	if cfg == nil || cfg.Timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, cfg.Timeout)
}

func newBestScoreStore(cfg *BestScoreConfig) (*bestscore.Store, string, error) {
	key := bestscore.DefaultKey
	path := ""
	if cfg != nil {
		path = strings.TrimSpace(cfg.File)
		if k := strings.TrimSpace(cfg.Key); k != "" {
			key = k
		}
	}

	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, "", fmt.Errorf("locating best score file: %w", err)
		}
		path = filepath.Join(dir, app, "best-score.json")
	}

	return bestscore.New(path), key, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
