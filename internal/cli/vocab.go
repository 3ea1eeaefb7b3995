package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ZaguanLabs/gotlas"
	"github.com/spf13/cobra"
)

func newVocabCommand(app *App) *cobra.Command {
	flags := app.Flags
	cmd := &cobra.Command{
		Use:     "vocab",
		Aliases: []string{"vocabulary"},
		Short:   "Manage the vocabulary notebook",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved translations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, vocab, err := app.Stores()
			if err != nil {
				return err
			}

			entries := vocab.Entries()
			switch {
			case flags.Due:
				entries = vocab.DueForReview()
			case flags.Difficulty != "":
				d := gotlas.Difficulty(strings.ToLower(flags.Difficulty))
				if !d.Valid() {
					return fmt.Errorf("invalid difficulty %q (easy, medium or hard)", flags.Difficulty)
				}
				entries = vocab.ByDifficulty(d)
			}
			if cmd.Flags().Changed("from") || cmd.Flags().Changed("to") {
				s := app.Settings()
				entries = filterLanguages(entries, gotlas.NormalizeLanguage(s.Source), gotlas.NormalizeLanguage(s.Target))
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No vocabulary entries.")
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s  %s→%s  %-6s reviews:%d\n", e.ID, e.SourceLanguage, e.TargetLanguage, e.Difficulty, e.ReviewCount)
				fmt.Fprintf(out, "    %s = %s\n", e.OriginalText, e.TranslatedText)
				if e.Notes != "" {
					fmt.Fprintf(out, "    notes: %s\n", strings.ReplaceAll(e.Notes, "\n", " "))
				}
				for _, ex := range e.ExampleSentences {
					fmt.Fprintf(out, "    - %s\n", ex)
				}
			}
			return nil
		},
	}
	list.Flags().BoolVar(&flags.Due, "due", false, "only entries due for review")
	list.Flags().StringVar(&flags.Difficulty, "difficulty", "", "only entries of this difficulty")

	review := &cobra.Command{
		Use:   "review <id>",
		Short: "Mark an entry as reviewed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, vocab, err := app.Stores()
			if err != nil {
				return err
			}
			if !vocab.MarkReviewed(args[0]) {
				return fmt.Errorf("vocabulary entry %q not found", args[0])
			}
			e, _ := vocab.Get(args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Reviewed %q (%d times)\n", e.OriginalText, e.ReviewCount)
			return nil
		},
	}

	examples := &cobra.Command{
		Use:   "examples <id>",
		Short: "Generate more example sentences for an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, vocab, err := app.Stores()
			if err != nil {
				return err
			}
			p, err := app.AIProvider(cmd.Context())
			if err != nil {
				return err
			}
			all, err := vocab.GenerateExamples(cmd.Context(), p, args[0])
			if err != nil {
				return err
			}
			for _, ex := range all {
				fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", ex)
			}
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove an entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, vocab, err := app.Stores()
			if err != nil {
				return err
			}
			if _, ok := vocab.Get(args[0]); !ok {
				return fmt.Errorf("vocabulary entry %q not found", args[0])
			}
			vocab.Remove(args[0])
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, vocab, err := app.Stores()
			if err != nil {
				return err
			}
			vocab.Clear()
			fmt.Fprintln(cmd.OutOrStdout(), "Vocabulary cleared.")
			return nil
		},
	}

	export := &cobra.Command{
		Use:   "export",
		Short: "Export the notebook as JSON or CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, vocab, err := app.Stores()
			if err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			if flags.Output != "" {
				f, err := os.Create(flags.Output)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				out = f
			}

			switch strings.ToLower(flags.Format) {
			case "json":
				return gotlas.ExportVocabulary(out, vocab.Entries(), map[string]string{
					"application": gotlas.Name,
					"version":     gotlas.FullVersion(),
				})
			case "csv":
				return gotlas.WriteVocabularyCSV(out, vocab.Entries())
			default:
				return fmt.Errorf("unknown export format %q (json or csv)", flags.Format)
			}
		},
	}
	export.Flags().StringVarP(&flags.Output, "output", "o", "", "output file (default: stdout)")
	export.Flags().StringVarP(&flags.Format, "format", "f", flags.Format, "export format: json or csv")

	imp := &cobra.Command{
		Use:   "import <file>",
		Short: "Merge entries from an exported notebook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, vocab, err := app.Stores()
			if err != nil {
				return err
			}

			f, err := os.Open(args[0]) // #nosec G304 - CLI tool reads user-specified files
			if err != nil {
				return fmt.Errorf("opening import file: %w", err)
			}
			defer f.Close()

			exported, err := gotlas.ImportVocabulary(f)
			if err != nil {
				return err
			}

			stats := vocab.Import(exported.Entries).Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d entries\n", stats.Added)
			fmt.Fprintf(out, "  Already saved: %d\n", stats.Unchanged)
			fmt.Fprintf(out, "  Conflicts:     %d (kept existing)\n", stats.Conflicts)
			fmt.Fprintf(out, "  Dropped:       %d (notebook full)\n", stats.Dropped)
			return nil
		},
	}

	cmd.AddCommand(list, review, examples, remove, clearCmd, export, imp)
	return cmd
}

func filterLanguages(entries []gotlas.VocabularyEntry, source, target string) []gotlas.VocabularyEntry {
	var out []gotlas.VocabularyEntry
	for _, e := range entries {
		if (source == "" || e.SourceLanguage == source) && (target == "" || e.TargetLanguage == target) {
			out = append(out, e)
		}
	}
	return out
}
