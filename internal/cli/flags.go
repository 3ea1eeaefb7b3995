package cli

// Flags holds command-line flag values that are not resolved through viper.
type Flags struct {
	CfgFile string
	EnvFile string

	// translate
	ImagePath string
	Notes     string
	Save      bool
	Examples  bool
	JSON      bool

	// article
	Level   string
	CSVPath string

	// output file for speak and vocab export
	Output string
	Format string

	// vocab list filters
	Due        bool
	Difficulty string
}

// NewFlags creates a new Flags instance with default values.
func NewFlags() *Flags {
	return &Flags{
		EnvFile: ".env",
		Level:   "intermediate",
		Format:  "json",
	}
}
