package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newSpeakCommand(app *App) *cobra.Command {
	flags := app.Flags
	cmd := &cobra.Command{
		Use:   "speak [text]",
		Short: "Read text aloud in the target language",
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readText(args, app.In)
			if err != nil {
				return err
			}
			lang, err := normalize(app.Settings().Target)
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if flags.Output != "" {
				f, err := os.Create(flags.Output)
				if err != nil {
					return fmt.Errorf("creating output file: %w", err)
				}
				defer f.Close()
				w = f
			}

			n, err := app.Synthesizer().Speak(cmd.Context(), text, lang, w)
			if err != nil {
				return err
			}
			if flags.Output != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d bytes to %s\n", n, flags.Output)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "audio file to write (default: stdout)")
	return cmd
}

func newTranscribeCommand(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "transcribe <audio-file>",
		Short: "Turn recorded speech into text",
		Long: `Transcribe an audio recording. With --from auto the spoken language is
detected from the transcript.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			lang := ""
			if src := app.Settings().Source; !strings.EqualFold(src, sourceAuto) {
				var err error
				if lang, err = normalize(src); err != nil {
					return err
				}
			}

			f, err := os.Open(args[0]) // #nosec G304 - CLI tool reads user-specified files
			if err != nil {
				return fmt.Errorf("opening recording: %w", err)
			}
			defer f.Close()

			t, err := app.Transcriber().Transcribe(ctx, f, filepath.Base(args[0]), lang)
			if err != nil {
				return err
			}

			if lang == "" {
				d, err := app.Detector(ctx)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Detected language: %s\n", languageLabel(d.Detect(ctx, t.Text)))
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.Text)
			return nil
		},
	}
}
