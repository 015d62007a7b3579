package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-lens/internal/annotation"
)

const PromptDone = "Done"

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Ask the model for span annotations and optionally apply one suggestion",
	Run: func(cmd *cobra.Command, _ []string) {
		runAnnotate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(annotateCmd)

	addResumeFlag(annotateCmd)
	addJobFlags(annotateCmd)
	annotateCmd.Flags().Bool(flagClip, false, "clip overlapping annotations instead of rejecting the reply")
	annotateCmd.Flags().BoolP("interactive", "i", false, "choose a suggested replacement and apply it")
	annotateCmd.Flags().StringP(flagOut, "o", "", "file for the edited resume (interactive mode, default stdout)")
}

type annotateOutput struct {
	Spans    []annotation.Span    `json:"spans"`
	Segments []annotation.Segment `json:"segments"`
}

func runAnnotate(cmd *cobra.Command) {
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

	completer, err := newCompleter(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("creating ai completer", zap.Error(err))
	}

	var opts []annotation.Option
	if clip, _ := cmd.Flags().GetBool(flagClip); clip {
		opts = append(opts, annotation.WithClipping())
	}

	callCtx, cancel := aiContext(ctx, config.AI)
	defer cancel()

	spans, err := annotation.NewAnnotator(completer, logger, opts...).Annotate(callCtx, text, posting)
	if err != nil {
		var perr *annotation.ParseError
		if errors.As(err, &perr) {
			logger.Error("could not parse annotations", zap.String("raw", perr.Raw))
		}
		logger.Fatal("annotating resume", zap.Error(err))
	}

	segments, ordered := annotation.BuildSegments(text, spans)

	if interactive, _ := cmd.Flags().GetBool("interactive"); !interactive {
		if err := writeJSON(cmd.OutOrStdout(), annotateOutput{Spans: ordered, Segments: segments}); err != nil {
			logger.Fatal("writing annotations", zap.Error(err))
		}
		return
	}

	edited, applied, err := chooseReplacement(text, ordered)
	if err != nil {
		logger.Fatal("applying suggestion", zap.Error(err))
	}
	if !applied {
		logger.Info("no suggestion applied")
		return
	}

	// Offsets of the remaining annotations are stale after a splice.
	logger.Info("suggestion applied; annotations discarded, run annotate again for fresh ones")

	out, _ := cmd.Flags().GetString(flagOut)
	if out == "" {
		fmt.Fprint(cmd.OutOrStdout(), edited)
		return
	}
	if err := writeFile(out, []byte(edited)); err != nil {
		logger.Fatal("writing edited resume", zap.Error(err))
	}
	logger.Info("edited resume written", zap.String("filename", out))
}

// chooseReplacement lets the user pick one span with a replacement and applies it.
func chooseReplacement(text string, spans []annotation.Span) (string, bool, error) {
	candidates := make([]annotation.Span, 0, len(spans))
	items := make([]string, 0, len(spans)+1)
	for _, s := range spans {
		if !s.HasReplacement() {
			continue
		}
		candidates = append(candidates, s)
		items = append(items, replacementLabel(text, s))
	}
	if len(candidates) == 0 {
		return text, false, nil
	}

	selectPrompt := promptui.Select{
		Label: "Choose a suggestion to apply and press ENTER",
		Items: append(items, PromptDone),
		Size:  10,
	}

	idx, _, err := selectPrompt.Run()
	if err != nil {
		return "", false, err
	}
	if idx == len(candidates) {
		return text, false, nil
	}

	edited, err := annotation.ApplyReplacement(text, candidates[idx])
	if err != nil {
		return "", false, err
	}
	return edited, true, nil
}

func replacementLabel(text string, s annotation.Span) string {
	original := annotation.Segment{Start: s.Start, End: s.End}.Text(text)
	return fmt.Sprintf("[%s] %s: %q -> %q", s.Category, oneLine(s.Message), oneLine(original), oneLine(*s.Replacement))
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
