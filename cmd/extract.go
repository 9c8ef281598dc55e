package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/inostartas/grant-cli/internal/model"
	"github.com/inostartas/grant-cli/internal/parser"
	"github.com/inostartas/grant-cli/internal/pipeline"
	anthropicpkg "github.com/inostartas/grant-cli/pkg/anthropic"
)

var extractIdeaFile string

var extractCmd = &cobra.Command{
	Use:   "extract [idea text]",
	Short: "Extract application fields from a business idea",
	Long:  "Runs one LLM extraction over the business idea, parses the completion into the field schema, and stores the session with its completeness report.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		idea, err := readIdea(args)
		if err != nil {
			return err
		}

		reg, err := loadRegistry()
		if err != nil {
			return eris.Wrap(err, "load schema")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		client := anthropicpkg.NewClient(cfg.Anthropic.Key, cfg.Anthropic.RequestsPerSec)
		p := parser.New(parser.WithMinValueLen(cfg.Parser.MinValueLen))

		sess, err := st.CreateSession(ctx, idea)
		if err != nil {
			return eris.Wrap(err, "create session")
		}

		result := pipeline.ExtractPhase(ctx, idea, reg, p, client, cfg.Anthropic)

		sess.Record = result.Record
		sess.Usage = result.Usage
		sess.Status = model.SessionStatusExtracted
		if err := st.UpdateSession(ctx, sess); err != nil {
			return eris.Wrap(err, "save session")
		}

		fmt.Println(pipeline.FormatReport(*sess, result.Report, reg))
		fmt.Printf("Session: %s\n", sess.ID)
		return nil
	},
}

// readIdea takes the idea from args or, with --file, from a text file.
func readIdea(args []string) (string, error) {
	if extractIdeaFile != "" {
		data, err := os.ReadFile(extractIdeaFile)
		if err != nil {
			return "", eris.Wrapf(err, "read idea file %s", extractIdeaFile)
		}
		return strings.TrimSpace(string(data)), nil
	}
	if len(args) == 0 {
		return "", eris.New("provide the idea text as an argument or use --file")
	}
	return strings.TrimSpace(strings.Join(args, " ")), nil
}

func init() {
	extractCmd.Flags().StringVarP(&extractIdeaFile, "file", "f", "", "read the business idea from a text file")
	rootCmd.AddCommand(extractCmd)
}
