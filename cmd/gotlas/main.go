// Command gotlas is an AI translation assistant for the terminal.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/ZaguanLabs/gotlas"
	"github.com/ZaguanLabs/gotlas/internal/cli"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := cli.NewFlags()
	app := cli.NewApp(flags)
	defer app.Close()

	rootCmd := cli.CreateRootCommand(app)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", gotlas.UserMessage(err, err.Error()))
		app.Log.WithError(err).Debug("command failed")
		return 1
	}
	return 0
}
