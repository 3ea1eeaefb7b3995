package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZaguanLabs/gotlas"
	"github.com/spf13/cobra"
)

// translateOutput is the --json form of a translation.
type translateOutput struct {
	Original    string                       `json:"original"`
	Translation string                       `json:"translation"`
	Source      string                       `json:"source"`
	Target      string                       `json:"target"`
	Tone        gotlas.Tone                  `json:"tone"`
	Mode        gotlas.InputMode             `json:"mode"`
	Slang       *gotlas.SlangDetectionResult `json:"slang,omitempty"`
	Examples    []string                     `json:"examples,omitempty"`
	SavedID     string                       `json:"saved_id,omitempty"`
}

func newTranslateCommand(app *App) *cobra.Command {
	flags := app.Flags
	cmd := &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate text, or the text in an image",
		Long: `Translate text given as arguments or on stdin.

Recent translations for the same language pair and tone are sent as context.
Slang and idioms are flagged before translating and passed to the model.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

			tr, auto, err := app.Translator(ctx)
			if err != nil {
				return err
			}
			defer tr.Close()

			var slang *gotlas.SlangDetectionResult
			if flags.ImagePath != "" {
				img, err := loadImage(flags.ImagePath)
				if err != nil {
					return err
				}
				tr.SetMode(gotlas.ModeImage)
				if _, err := tr.SetImage(ctx, img); err != nil {
					return err
				}
			} else {
				text, err := readText(args, app.In)
				if err != nil {
					return err
				}
				tr.SetInput(text)

				if auto && strings.TrimSpace(text) != "" {
					code := tr.DetectLanguage(ctx)
					fmt.Fprintf(errOut, "Detected language: %s\n", languageLabel(code))
				}

				result := tr.AnalyzeSlang()
				if result.HasSlang {
					slang = &result
					if !flags.JSON {
						printSlang(errOut, result)
					}
				}
			}

			res, err := tr.Translate(ctx)
			if err != nil {
				return err
			}

			output := translateOutput{
				Original:    res.OriginalText,
				Translation: res.TranslatedText,
				Source:      res.SourceLanguage,
				Target:      res.TargetLanguage,
				Tone:        res.Tone,
				Mode:        res.Mode,
				Slang:       slang,
			}

			if flags.Examples {
				examples, err := tr.GenerateExamples(ctx)
				if err != nil {
					return err
				}
				output.Examples = examples
			}

			if flags.Save {
				entry, added, err := tr.SaveTranslation(flags.Notes)
				if err != nil {
					return err
				}
				output.SavedID = entry.ID
				if !added && !flags.JSON {
					fmt.Fprintln(errOut, "Already in vocabulary.")
				}
			}

			if flags.JSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(output)
			}

			if res.Mode == gotlas.ModeImage {
				fmt.Fprintf(out, "Original: %s\n\n", res.OriginalText)
			}
			fmt.Fprintln(out, res.TranslatedText)
			for i, ex := range output.Examples {
				if i == 0 {
					fmt.Fprintln(out, "\nExamples:")
				}
				fmt.Fprintf(out, "  - %s\n", ex)
			}
			if output.SavedID != "" {
				fmt.Fprintf(errOut, "Saved to vocabulary: %s\n", output.SavedID)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&flags.ImagePath, "image", "i", "", "translate the text in this image file")
	cmd.Flags().BoolVarP(&flags.Save, "save", "s", false, "save the translation to the vocabulary notebook")
	cmd.Flags().StringVar(&flags.Notes, "notes", "", "notes stored with a saved translation")
	cmd.Flags().BoolVarP(&flags.Examples, "examples", "e", false, "generate example sentences")
	cmd.Flags().BoolVar(&flags.JSON, "json", false, "output result as JSON")

	return cmd
}

func newDetectCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "detect [text]",
		Short: "Detect the language of text",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args, app.In)
			if err != nil {
				return err
			}
			d, err := app.Detector(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), languageLabel(d.Detect(cmd.Context(), text)))
			return nil
		},
	}
}

func newSlangCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "slang [text]",
		Short: "Flag slang and idioms without calling the provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args, app.In)
			if err != nil {
				return err
			}
			lang, err := normalize(app.Settings().Source)
			if err != nil {
				return err
			}

			result := gotlas.NewSlangDetector().Analyze(text, lang)
			if !result.HasSlang {
				fmt.Fprintln(cmd.OutOrStdout(), "No slang or idioms found.")
				return nil
			}
			printSlang(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func newAnalyzeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [text]",
		Short: "Detect the language and flag slang in one pass",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args, app.In)
			if err != nil {
				return err
			}
			d, err := app.Detector(cmd.Context())
			if err != nil {
				return err
			}

			lang := ""
			if src := app.Settings().Source; !strings.EqualFold(src, sourceAuto) {
				if lang, err = normalize(src); err != nil {
					return err
				}
			}

			a := gotlas.Analyze(cmd.Context(), d, nil, text, lang)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Language: %s\n", languageLabel(a.Language))
			if a.Slang.HasSlang {
				printSlang(out, a.Slang)
			} else {
				fmt.Fprintln(out, "No slang or idioms found.")
			}
			fmt.Fprintf(out, "Difficulty: %s\n", gotlas.ClassifyDifficulty(text))
			return nil
		},
	}
}

func printSlang(w io.Writer, r gotlas.SlangDetectionResult) {
	fmt.Fprintf(w, "Slang/idioms: %s\n", strings.Join(r.SlangTerms, ", "))
	for _, s := range r.Suggestions {
		fmt.Fprintf(w, "  - %s\n", s)
	}
}

// loadImage reads an image file and sniffs its MIME type.
func loadImage(path string) (gotlas.Image, error) {
	data, err := os.ReadFile(path) // #nosec G304 - CLI tool reads user-specified files
	if err != nil {
		return gotlas.Image{}, fmt.Errorf("reading image: %w", err)
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		if byExt := mime.TypeByExtension(filepath.Ext(path)); byExt != "" {
			mimeType = byExt
		}
	}

	img := gotlas.Image{Name: filepath.Base(path), MIMEType: mimeType, Data: data}
	return img, gotlas.ValidateImage(img)
}
