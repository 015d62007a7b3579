package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-lens/internal/analysis"
	"github.com/spigell/resume-lens/internal/grading"
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Grade a resume on its own (score challenge)",
	Run: func(cmd *cobra.Command, _ []string) {
		runGrade(cmd)
	},
}

func init() {
	rootCmd.AddCommand(gradeCmd)

	addResumeFlag(gradeCmd)
	gradeCmd.Flags().Bool(flagTrack, false, "compare with and store the personal best score")
}

type gradeOutput struct {
	grading.Result
	BestScore *analysis.BestScore `json:"bestScore,omitempty"`
}

func runGrade(cmd *cobra.Command) {
	logger, config := setup()

	resumePath, _ := cmd.Flags().GetString(flagResume)
	text, err := readResume(resumePath, cmd.InOrStdin())
	if err != nil {
		logger.Fatal("reading resume", zap.Error(err))
	}

	out := gradeOutput{Result: grading.Grade(text)}

	logger.Info("resume graded", zap.Int("overall", out.Breakdown.Overall), zap.Int("suggestions", len(out.Suggestions)))

	if track, _ := cmd.Flags().GetBool(flagTrack); track {
		store, key, err := newBestScoreStore(config.BestScore)
		if err != nil {
			logger.Fatal("opening best score store", zap.Error(err))
		}

		best, improved, err := store.Record(key, out.Breakdown.Overall)
		if err != nil {
			logger.Fatal("recording best score", zap.Error(err), zap.String("file", store.Path()))
		}
		out.BestScore = &analysis.BestScore{Best: best, Improved: improved}

		if improved {
			logger.Info("new personal best", zap.Int("best", best))
		} else {
			logger.Info("personal best unchanged", zap.Int("best", best))
		}
	}

	if err := writeJSON(cmd.OutOrStdout(), out); err != nil {
		logger.Fatal("writing grade", zap.Error(err))
	}
}
