package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZaguanLabs/gotlas"
	"github.com/ZaguanLabs/gotlas/provider"
	"github.com/ZaguanLabs/gotlas/speech"
	"github.com/ZaguanLabs/gotlas/storage"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// InitConfig loads an optional .env file and initializes viper configuration.
func InitConfig(cfgFile, envFile string) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", envFile, err)
		}
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".gotlas" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".gotlas")
	}

	// GOTLAS_PROVIDER_API_KEY maps to provider.api_key
	viper.SetEnvPrefix("GOTLAS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// Settings is the resolved configuration for one command run.
type Settings struct {
	Provider          provider.Config
	MaxRetries        int
	RequestsPerMinute int
	Breaker           bool

	Storage storage.Config
	Speech  speech.Config

	LogLevel  string
	LogFormat string

	Source string
	Target string
	Tone   gotlas.Tone
}

// LoadSettings reads the current viper state.
func LoadSettings() Settings {
	s := Settings{
		Provider: provider.Config{
			Name:        viper.GetString("provider.name"),
			APIKey:      viper.GetString("provider.api_key"),
			Model:       viper.GetString("provider.model"),
			BaseURL:     viper.GetString("provider.base_url"),
			Temperature: float32(viper.GetFloat64("provider.temperature")),
		},
		MaxRetries:        viper.GetInt("provider.max_retries"),
		RequestsPerMinute: viper.GetInt("provider.requests_per_minute"),
		Breaker:           viper.GetBool("provider.breaker"),
		Storage: storage.Config{
			Backend:    viper.GetString("storage.backend"),
			Dir:        viper.GetString("storage.dir"),
			RedisURL:   viper.GetString("storage.redis_url"),
			KeyPrefix:  viper.GetString("storage.key_prefix"),
			SQLitePath: viper.GetString("storage.sqlite_path"),
		},
		Speech: speech.Config{
			APIKey:             viper.GetString("speech.api_key"),
			BaseURL:            viper.GetString("speech.base_url"),
			TTSModel:           viper.GetString("speech.model"),
			Voice:              viper.GetString("speech.voice"),
			Speed:              viper.GetFloat64("speech.speed"),
			TranscriptionModel: viper.GetString("speech.transcription_model"),
		},
		LogLevel:  viper.GetString("log.level"),
		LogFormat: viper.GetString("log.format"),
		Source:    viper.GetString("defaults.source"),
		Target:    viper.GetString("defaults.target"),
		Tone:      gotlas.Tone(viper.GetString("defaults.tone")),
	}

	if s.Provider.APIKey == "" {
		s.Provider.APIKey = providerKeyFromEnv(s.Provider.Name)
	}
	if s.Speech.APIKey == "" {
		s.Speech.APIKey = os.Getenv("OPENAI_API_KEY")
		if s.Speech.APIKey == "" && !strings.EqualFold(s.Provider.Name, provider.NameGemini) {
			s.Speech.APIKey = s.Provider.APIKey
		}
	}
	if s.Storage.Backend == storage.BackendSQLite && s.Storage.SQLitePath == "" {
		home, _ := os.UserHomeDir()
		s.Storage.SQLitePath = filepath.Join(home, ".gotlas", "gotlas.db")
	}
	return s
}

// providerKeyFromEnv returns the vendor API key variable for a provider.
func providerKeyFromEnv(name string) string {
	switch strings.ToLower(name) {
	case provider.NameGemini:
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key
		}
		return os.Getenv("GOOGLE_API_KEY")
	case provider.NameMock:
		return ""
	default:
		return os.Getenv("OPENAI_API_KEY")
	}
}

// ConfigureLogger applies level and format ("text" or "json") to log.
func ConfigureLogger(log *logrus.Logger, level, format string) error {
	if level == "" {
		level = "warn"
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "", "text":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		return fmt.Errorf("invalid log format %q", format)
	}
	return nil
}
