package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/inostartas/grant-cli/internal/analyze"
	"github.com/inostartas/grant-cli/internal/merge"
	"github.com/inostartas/grant-cli/internal/model"
	"github.com/inostartas/grant-cli/internal/pipeline"
	"github.com/inostartas/grant-cli/internal/schema"
	anthropicpkg "github.com/inostartas/grant-cli/pkg/anthropic"
)

var completeStrategy string

var completeCmd = &cobra.Command{
	Use:   "complete <session-id>",
	Short: "Fill the missing fields of a session",
	Long:  "Resolves every missing field of an extracted session via the chosen strategy: auto (defaults + AI), manual (typed input), or hybrid (choose per field). Extracted values are never overwritten.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		strategy, err := merge.ParseStrategy(completeStrategy)
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

		sess, err := st.GetSession(ctx, args[0])
		if err != nil {
			return err
		}

		report := analyze.Completeness(sess.Record, reg)
		if report.Complete() {
			fmt.Println("Nothing to complete: every field already has a value.")
			return nil
		}

		in := merge.Input{Description: sess.Idea}
		missing := report.MissingIDs(reg.Categories())

		switch strategy {
		case merge.StrategyManual:
			in.UserValues = promptValues(os.Stdin, os.Stdout, reg, missing)
		case merge.StrategyHybrid:
			in.Choices, in.UserValues = promptChoices(os.Stdin, os.Stdout, reg, missing)
		}

		client := anthropicpkg.NewClient(cfg.Anthropic.Key, cfg.Anthropic.RequestsPerSec)
		ai := pipeline.NewAIFieldGenerator(reg, client, cfg.Anthropic)
		merger := merge.New(reg, newDefaultsGenerator(), ai)

		merged, err := merger.Apply(ctx, sess.Record, strategy, in)
		if err != nil {
			return eris.Wrap(err, "merge")
		}

		sess.Record = merged
		aiUsage := ai.Usage()
		sess.Usage.Add(model.TokenUsage{
			InputTokens:  int(aiUsage.InputTokens),
			OutputTokens: int(aiUsage.OutputTokens),
			Cost:         aiUsage.EstimateCost(cfg.Anthropic.Model),
		})

		final := analyze.Completeness(merged, reg)
		if final.Complete() {
			sess.Status = model.SessionStatusFinalized
		} else {
			sess.Status = model.SessionStatusCompleted
		}
		if err := st.UpdateSession(ctx, sess); err != nil {
			return eris.Wrap(err, "save session")
		}

		fmt.Println(pipeline.FormatReport(*sess, final, reg))
		return nil
	},
}

// promptValues asks the operator for each missing field. Empty submissions
// leave the field absent.
func promptValues(r io.Reader, w io.Writer, reg *schema.Registry, missing []string) map[string]string {
	scanner := bufio.NewScanner(r)
	values := make(map[string]string)

	fmt.Fprintf(w, "Enter values for %d missing fields (empty line skips):\n", len(missing))
	for i, id := range missing {
		fmt.Fprintf(w, "[%d/%d] %s\n  %s\n  value: ", i+1, len(missing), id, reg.Description(id))
		if !scanner.Scan() {
			break
		}
		if v := strings.TrimSpace(scanner.Text()); v != "" {
			values[id] = v
		}
	}
	return values
}

// promptChoices asks the operator, per missing field, whether to auto-generate
// or type a value.
func promptChoices(r io.Reader, w io.Writer, reg *schema.Registry, missing []string) (map[string]merge.Choice, map[string]string) {
	scanner := bufio.NewScanner(r)
	choices := make(map[string]merge.Choice)
	values := make(map[string]string)

	fmt.Fprintf(w, "Choose per field: [a]uto-generate / [m]anual / [s]kip (%d fields):\n", len(missing))
	for i, id := range missing {
		fmt.Fprintf(w, "[%d/%d] %s (%s)\n  choice: ", i+1, len(missing), id, reg.Description(id))
		if !scanner.Scan() {
			break
		}
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "a", "auto":
			choices[id] = merge.ChoiceAuto
		case "m", "manual":
			choices[id] = merge.ChoiceManual
			fmt.Fprint(w, "  value: ")
			if !scanner.Scan() {
				return choices, values
			}
			if v := strings.TrimSpace(scanner.Text()); v != "" {
				values[id] = v
			}
		default:
			// Skip: field stays manual with no typed value, i.e. absent.
			choices[id] = merge.ChoiceManual
		}
	}
	return choices, values
}

func init() {
	completeCmd.Flags().StringVarP(&completeStrategy, "strategy", "s", "auto", "completion strategy: auto, manual, or hybrid")
	rootCmd.AddCommand(completeCmd)
}
