package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/inostartas/grant-cli/internal/parser"
	"github.com/inostartas/grant-cli/internal/validate"
	anthropicpkg "github.com/inostartas/grant-cli/pkg/anthropic"
)

var (
	validatePromptsDir string
	validateJSON       bool
)

var validateCmd = &cobra.Command{
	Use:   "validate <session-id>",
	Short: "Score the session corpus against prompt requirements",
	Long:  "Asks the model, per prompt-requirement document, whether the finalized session text satisfies the document's informational needs. Conservative about absence: paraphrased information counts as present.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		reg, err := loadRegistry()
		if err != nil {
			return eris.Wrap(err, "load schema")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		sess, err := st.GetSession(ctx, args[0])
		if err != nil {
			return err
		}

		promptsDir := validatePromptsDir
		if promptsDir == "" {
			promptsDir = cfg.Validate.PromptsDir
		}
		docs, err := validate.LoadPromptDocs(promptsDir)
		if err != nil {
			return err
		}

		// The corpus is the idea plus the finalized record in its own
		// round-trippable key-value text form.
		corpus := sess.Idea + "\n\n" + parser.Encode(sess.Record, reg)

		client := anthropicpkg.NewClient(cfg.Anthropic.Key, cfg.Anthropic.RequestsPerSec)
		v := validate.New(client, cfg.Anthropic, cfg.Validate)

		summary, err := v.ValidateAll(ctx, corpus, docs)
		if err != nil {
			return err
		}

		if err := st.SaveValidation(ctx, sess.ID, summary); err != nil {
			return eris.Wrap(err, "save validation report")
		}

		if validateJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		}

		fmt.Printf("Overall completeness: %.2f%%\n", summary.OverallScore)
		fmt.Printf("Prompts analyzed: %d\n", len(summary.Evaluations))
		for _, e := range summary.Evaluations {
			flag := ""
			if e.ParseFailed {
				flag = " (manual review recommended)"
			}
			fmt.Printf("  %-40s %6.1f%%%s\n", e.PromptName, e.CompletenessScore, flag)
		}
		if len(summary.PromptsWithIssues) > 0 {
			fmt.Printf("Below threshold (%.0f): %v\n", cfg.Validate.ScoreThreshold, summary.PromptsWithIssues)
		}
		if len(summary.AllMissingFields) > 0 {
			fmt.Printf("Fields needing attention: %v\n", summary.AllMissingFields)
		}
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validatePromptsDir, "prompts", "", "directory of prompt-requirement .txt files (default from config)")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "emit the full validation summary as JSON")
	rootCmd.AddCommand(validateCmd)
}
