package cmd

import (
	"bytes"
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-lens/internal/analysis"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run every analysis step over a resume and print one report",
	Run: func(cmd *cobra.Command, _ []string) {
		runAnalyze(cmd)
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	addResumeFlag(analyzeCmd)
	addJobFlags(analyzeCmd)
	analyzeCmd.Flags().Bool("with-ai", false, "also request annotations and an audit from the model")
	analyzeCmd.Flags().Bool(flagClip, false, "clip overlapping annotations instead of rejecting the reply")
	analyzeCmd.Flags().Bool(flagTrack, false, "compare the grade with and store the personal best score")
	analyzeCmd.Flags().StringP(flagOut, "o", "", "also write the report to a file")
}

func runAnalyze(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	resumePath, _ := cmd.Flags().GetString(flagResume)
	text, err := readResume(resumePath, cmd.InOrStdin())
	if err != nil {
		logger.Fatal("reading resume", zap.Error(err))
	}

	posting, err := loadPosting(ctx, cmd, config, logger)
	if err != nil {
		logger.Fatal("loading job posting", zap.Error(err))
	}

	clip, _ := cmd.Flags().GetBool(flagClip)
	steps := analysis.DefaultSteps(clip)
	deps := analysis.Deps{Logger: logger}

	if posting == nil {
		for _, name := range []string{analysis.StepKeywords, analysis.StepMatch, analysis.StepAudit} {
			analysis.DisableByName(steps, name, "no job posting given")
		}
	}

	if withAI, _ := cmd.Flags().GetBool("with-ai"); withAI {
		completer, err := newCompleter(ctx, config.AI, logger)
		if err != nil {
			logger.Fatal("creating ai completer", zap.Error(err))
		}
		deps.Completer = completer
	} else {
		analysis.DisableByName(steps, analysis.StepAnnotate, "--with-ai is not set")
		analysis.DisableByName(steps, analysis.StepAudit, "--with-ai is not set")
	}

	if track, _ := cmd.Flags().GetBool(flagTrack); track {
		store, key, err := newBestScoreStore(config.BestScore)
		if err != nil {
			logger.Fatal("opening best score store", zap.Error(err))
		}
		deps.Scores = store
		deps.ScoreKey = key
	}

	for _, status := range analysis.Describe(steps) {
		logger.Debug("analysis step status",
			zap.String("name", status.Name),
			zap.Bool("enabled", status.Enabled),
			zap.String("reason", status.Reason),
			zap.Any("details", status.Details),
		)
	}

	runCtx, cancel := aiContext(ctx, config.AI)
	defer cancel()

	report, err := analysis.Run(runCtx, analysis.Input{ResumeText: text, Posting: posting}, deps, steps)
	if err != nil {
		logger.Fatal("running analysis", zap.Error(err))
	}

	var buf bytes.Buffer
	if err := writeJSON(&buf, report); err != nil {
		logger.Fatal("encoding report", zap.Error(err))
	}
	fmt.Fprint(cmd.OutOrStdout(), buf.String())

	if out, _ := cmd.Flags().GetString(flagOut); out != "" {
		if err := writeFile(out, buf.Bytes()); err != nil {
			logger.Fatal("writing report", zap.Error(err))
		}
		logger.Info("report written", zap.String("filename", out))
	}

	if len(report.Failures) > 0 {
		logger.Warn("some analysis steps failed", zap.Any("failures", report.Failures))
	}
}
