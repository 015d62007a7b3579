package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spigell/resume-lens/internal/audit"
)

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Ask the model for a structured resume audit against a job posting",
	Run: func(cmd *cobra.Command, _ []string) {
		runAudit(cmd)
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)

	addResumeFlag(auditCmd)
	addJobFlags(auditCmd)
	auditCmd.Flags().StringP(flagOut, "o", "", "download the report to a file; 'auto' picks resume-audit-<company>.json")
}

func runAudit(cmd *cobra.Command) {
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

	completer, err := newCompleter(ctx, config.AI, logger)
	if err != nil {
		logger.Fatal("creating ai completer", zap.Error(err))
	}

	callCtx, cancel := aiContext(ctx, config.AI)
	defer cancel()

	outcome, err := audit.NewAssembler(completer, logger).Generate(callCtx, text, *posting)
	if err != nil {
		logger.Fatal("generating audit", zap.Error(err))
	}

	doc, err := outcome.Document()
	if err != nil {
		logger.Fatal("encoding audit", zap.Error(err))
	}

	if !outcome.OK() {
		logger.Warn("could not parse the audit; showing the raw reply",
			zap.String("request_id", outcome.RequestID),
			zap.Error(outcome.ParseErr),
		)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(doc))

	out, _ := cmd.Flags().GetString(flagOut)
	if out == "" {
		return
	}
	if out == "auto" {
		out = audit.FileName(posting.Company)
	}
	if err := writeFile(out, doc); err != nil {
		logger.Fatal("downloading audit", zap.Error(err))
	}
	logger.Info("audit downloaded", zap.String("filename", out))
}
