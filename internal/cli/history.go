package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newHistoryCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the conversation history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			history, _, err := app.Stores()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			entries := history.Entries()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No translations yet.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %s  %s→%s [%s]\n", e.ID, formatMillis(e.Timestamp), e.SourceLanguage, e.TargetLanguage, e.Tone)
				fmt.Fprintf(out, "    %s\n    %s\n", e.OriginalText, e.TranslatedText)
			}
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "rm <id>",
			Short: "Remove a history entry",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				history, _, err := app.Stores()
				if err != nil {
					return err
				}
				if _, ok := history.Get(args[0]); !ok {
					return fmt.Errorf("history entry %q not found", args[0])
				}
				history.Remove(args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Delete the whole history",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				history, _, err := app.Stores()
				if err != nil {
					return err
				}
				history.Clear()
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
				return nil
			},
		},
	)
	return cmd
}

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04")
}
