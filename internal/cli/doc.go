// Package cli provides command-line interface setup and configuration
// for the gotlas application. It handles flag parsing, command creation,
// configuration management using cobra and viper, and wires providers and
// storage backends from that configuration.
package cli
