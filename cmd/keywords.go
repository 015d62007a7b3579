package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-lens/internal/keywords"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "List the keywords of a job posting, requirements first",
	Run: func(cmd *cobra.Command, _ []string) {
		runKeywords(cmd)
	},
}

func init() {
	rootCmd.AddCommand(keywordsCmd)

	addJobFlags(keywordsCmd)
	keywordsCmd.Flags().IntP("max", "n", keywords.DefaultMax, "maximum number of keywords")
}

func runKeywords(cmd *cobra.Command) {
	ctx := context.Background()
	logger, config := setup()

	posting, err := loadPosting(ctx, cmd, config, logger)
	if err != nil {
		logger.Fatal("loading job posting", zap.Error(err))
	}
	if posting == nil {
		logger.Fatal("job posting is required", zap.String("hint", "use --job or --hh-vacancy"))
	}

	limit, _ := cmd.Flags().GetInt("max")
	list := keywords.Extract(*posting, limit)

	logger.Debug("keywords extracted", zap.Int("count", len(list)), zap.Int("max", limit))

	if err := writeJSON(cmd.OutOrStdout(), list); err != nil {
		logger.Fatal("writing keywords", zap.Error(err))
	}
}
