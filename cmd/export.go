package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/inostartas/grant-cli/internal/parser"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <session-id>",
	Short: "Export a session record as FIELD: value lines",
	Long:  "Writes the session's field record in the plain key-value text format consumed by the document templates. The format round-trips through the extraction parser.",
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

		out := parser.Encode(sess.Record, reg)
		if exportOut == "" {
			fmt.Print(out)
			return nil
		}
		if err := os.WriteFile(exportOut, []byte(out), 0o644); err != nil {
			return eris.Wrapf(err, "write %s", exportOut)
		}
		fmt.Printf("Wrote %d fields to %s\n", sess.Record.Len(), exportOut)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default stdout)")
	rootCmd.AddCommand(exportCmd)
}
