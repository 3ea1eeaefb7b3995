package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/ZaguanLabs/gotlas"
	"github.com/spf13/cobra"
)

func newArticleCommand(app *App) *cobra.Command {
	flags := app.Flags
	cmd := &cobra.Command{
		Use:   "article [url|file]",
		Short: "Mine an article for vocabulary",
		Long: `Fetch an article (or read it from a file or stdin) and ask the
provider for words and phrases worth learning at the chosen level.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

			level := gotlas.ArticleLevel(strings.ToLower(flags.Level))
			switch level {
			case gotlas.LevelBeginner, gotlas.LevelIntermediate, gotlas.LevelAdvanced:
			default:
				return fmt.Errorf("invalid level %q (beginner, intermediate or advanced)", flags.Level)
			}

			var text string
			switch {
			case len(args) == 1 && isURL(args[0]):
				a, err := app.ArticleFetcher().Fetch(ctx, args[0])
				if err != nil {
					return err
				}
				if a.Title != "" {
					fmt.Fprintf(errOut, "Fetched: %s\n", a.Title)
				}
				if a.Truncated {
					fmt.Fprintf(errOut, "Article truncated to %d characters.\n", gotlas.MaxArticleLength)
				}
				text = a.Text
			case len(args) == 1:
				data, err := os.ReadFile(args[0]) // #nosec G304 - CLI tool reads user-specified files
				if err != nil {
					return fmt.Errorf("reading article: %w", err)
				}
				text = string(data)
			default:
				var err error
				if text, err = readText(nil, app.In); err != nil {
					return err
				}
			}

			tr, _, err := app.Translator(ctx)
			if err != nil {
				return err
			}
			defer tr.Close()

			tr.SetMode(gotlas.ModeArticle)
			tr.SetInput(text)

			items, err := tr.AnalyzeArticle(ctx, level)
			if err != nil {
				return err
			}

			if flags.CSVPath != "" {
				f, err := os.Create(flags.CSVPath)
				if err != nil {
					return fmt.Errorf("creating CSV file: %w", err)
				}
				defer f.Close()
				if err := gotlas.WriteVocabularyItemsCSV(f, items); err != nil {
					return err
				}
			}

			if len(items) == 0 {
				fmt.Fprintln(out, "No vocabulary found.")
				return nil
			}
			for i, item := range items {
				fmt.Fprintf(out, "%d. %s = %s\n", i+1, item.Word, item.Translation)
				if item.Explanation != "" {
					fmt.Fprintf(out, "   %s\n", item.Explanation)
				}
				if item.ExampleSource != "" {
					fmt.Fprintf(out, "   %s\n", item.ExampleSource)
				}
				if item.ExampleTarget != "" {
					fmt.Fprintf(out, "   %s\n", item.ExampleTarget)
				}
			}

			if flags.Save {
				added := tr.SaveArticleItems(items)
				fmt.Fprintf(errOut, "Saved %d of %d items to vocabulary.\n", added, len(items))
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.Level, "level", "l", flags.Level, "learner level: beginner, intermediate or advanced")
	cmd.Flags().BoolVarP(&flags.Save, "save", "s", false, "save the items to the vocabulary notebook")
	cmd.Flags().StringVar(&flags.CSVPath, "csv", "", "also write the items to this CSV file")

	return cmd
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
