package gotlas

// Version information for gotlas.
// These values can be overridden at build time using ldflags:
//
//	go build -ldflags "-X github.com/ZaguanLabs/gotlas.GitCommit=$(git rev-parse HEAD)"
const (
	// Name is the application name.
	Name = "gotlas"

	// Description is a short description of the application.
	Description = "Go Translation Assistant - context-aware AI translation with a vocabulary notebook"

	// Version is the semantic version of the application.
	Version = "0.1.0"

	// Repository is the source code repository URL.
	Repository = "https://github.com/ZaguanLabs/gotlas"

	// License is the software license.
	License = "MIT"
)

// Build information, set via ldflags.
var (
	GitCommit = "unknown"
	GitBranch = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

// FullVersion returns the version with the short commit appended when known.
func FullVersion() string {
	v := Version
	if GitCommit != "unknown" && GitCommit != "" {
		short := GitCommit
		if len(short) > 7 {
			short = short[:7]
		}
		v += "+" + short
	}
	return v
}

// UserAgent returns the User-Agent used for API requests.
func UserAgent() string {
	return Name + "/" + FullVersion()
}
