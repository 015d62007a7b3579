package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-lens/internal/match"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Score a resume against a job posting",
	Run: func(cmd *cobra.Command, _ []string) {
		runMatch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(matchCmd)

	addResumeFlag(matchCmd)
	addJobFlags(matchCmd)
}

func runMatch(cmd *cobra.Command) {
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
	if posting == nil {
		logger.Fatal("job posting is required", zap.String("hint", "use --job or --hh-vacancy"))
	}

	result := match.Compute(text, *posting)

	logger.Info("match computed",
		zap.Int("overall", result.OverallMatchPercent),
		zap.Int("keywords", result.KeywordsMatchPercent),
		zap.Int("ats", result.ATSCompatibilityPercent),
	)

	if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
		logger.Fatal("writing match result", zap.Error(err))
	}
}
