package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/ZaguanLabs/gotlas"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(app *App) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "gotlas",
		Short: "AI translation assistant with a vocabulary notebook",
		Long: `gotlas translates text and images with a generative AI provider.

It keeps a conversation history that gives the model context, flags slang
and idioms before translating, and saves translations to a vocabulary
notebook for spaced review.

Examples:
  gotlas translate --to fr "See you later"
  gotlas translate --from auto --tone casual "¿Qué onda, güey?"
  gotlas translate --image menu.jpg --to en
  gotlas article https://example.com/story --level beginner --save
  gotlas vocab list --due`,
		Version:       gotlas.FullVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			InitConfig(app.Flags.CfgFile, app.Flags.EnvFile)
			return app.setup()
		},
	}

	setupFlags(rootCmd, app.Flags)

	rootCmd.AddCommand(
		newTranslateCommand(app),
		newDetectCommand(app),
		newSlangCommand(app),
		newAnalyzeCommand(app),
		newHistoryCommand(app),
		newVocabCommand(app),
		newArticleCommand(app),
		newSpeakCommand(app),
		newTranscribeCommand(app),
		newLanguagesCommand(),
		newVersionCommand(),
	)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	pf := cmd.PersistentFlags()

	// Global flags
	pf.StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.gotlas.yaml)")
	pf.StringVar(&flags.EnvFile, "env-file", flags.EnvFile, "dotenv file loaded before configuration")

	// Provider flags
	pf.String("provider", "openai", "AI provider: openai, gemini or mock")
	pf.String("api-key", "", "provider API key (default: OPENAI_API_KEY or GEMINI_API_KEY env)")
	pf.String("model", "", "model name (provider default if empty)")
	pf.String("base-url", "", "custom provider endpoint")
	pf.Int("max-retries", 0, "retry transient provider failures this many times")
	pf.Int("rpm", 0, "limit provider requests per minute (0 = unlimited)")
	pf.Bool("breaker", false, "stop calling the provider after repeated failures")

	// Storage flags
	pf.String("storage", "file", "storage backend: file, redis, sqlite or memory")
	pf.String("storage-dir", "", "directory for the file backend (default is $HOME/.gotlas)")
	pf.String("redis-url", "redis://localhost:6379/0", "Redis URL for the redis backend")
	pf.String("sqlite-path", "", "database path for the sqlite backend (default is $HOME/.gotlas/gotlas.db)")

	// Session flags
	pf.String("from", "en", "source language code, name or \"auto\"")
	pf.String("to", "es", "target language code or name")
	pf.String("tone", string(gotlas.ToneNeutral), "tone: neutral, formal, casual or technical")

	// Logging flags
	pf.String("log-level", "warn", "log level: debug, info, warn or error")
	pf.String("log-format", "text", "log format: text or json")

	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	viper.BindPFlag("provider.name", pf.Lookup("provider"))
	viper.BindPFlag("provider.api_key", pf.Lookup("api-key"))
	viper.BindPFlag("provider.model", pf.Lookup("model"))
	viper.BindPFlag("provider.base_url", pf.Lookup("base-url"))
	viper.BindPFlag("provider.max_retries", pf.Lookup("max-retries"))
	viper.BindPFlag("provider.requests_per_minute", pf.Lookup("rpm"))
	viper.BindPFlag("provider.breaker", pf.Lookup("breaker"))
	viper.BindPFlag("storage.backend", pf.Lookup("storage"))
	viper.BindPFlag("storage.dir", pf.Lookup("storage-dir"))
	viper.BindPFlag("storage.redis_url", pf.Lookup("redis-url"))
	viper.BindPFlag("storage.sqlite_path", pf.Lookup("sqlite-path"))
	viper.BindPFlag("defaults.source", pf.Lookup("from"))
	viper.BindPFlag("defaults.target", pf.Lookup("to"))
	viper.BindPFlag("defaults.tone", pf.Lookup("tone"))
	viper.BindPFlag("log.level", pf.Lookup("log-level"))
	viper.BindPFlag("log.format", pf.Lookup("log-format"))
}

func newLanguagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages and tones",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Languages:")
			for _, l := range gotlas.Languages {
				fmt.Fprintf(out, "  %-4s %s\n", l.Code, l.Name)
			}
			fmt.Fprintln(out, "\nTones:")
			for _, t := range gotlas.Tones {
				fmt.Fprintf(out, "  %-10s %s\n", t.Code, t.Description)
			}
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", gotlas.Name, gotlas.FullVersion())
			if gotlas.GitCommit != "unknown" && gotlas.GitCommit != "" {
				fmt.Fprintf(out, "  commit:  %s\n", gotlas.GitCommit)
			}
			if gotlas.BuildDate != "unknown" && gotlas.BuildDate != "" {
				fmt.Fprintf(out, "  built:   %s\n", gotlas.BuildDate)
			}
		},
	}
}

// readText joins args, or reads in when there are none.
func readText(args []string, in io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if in == nil {
		return "", nil
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// languageLabel renders a code with its name.
func languageLabel(code string) string {
	return fmt.Sprintf("%s (%s)", gotlas.GetLanguageName(code), code)
}
