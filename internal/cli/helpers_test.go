package cli

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/ZaguanLabs/gotlas/provider"
	"github.com/ZaguanLabs/gotlas/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// newTestApp returns an App backed by the mock provider and a memory store.
func newTestApp(t *testing.T) (*App, *provider.MockProvider) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	t.Setenv("HOME", t.TempDir())

	log := logrus.New()
	log.SetOutput(io.Discard)

	mock := provider.NewMockProvider()
	app := &App{
		Flags:    NewFlags(),
		Log:      log,
		In:       strings.NewReader(""),
		Provider: mock,
		Store:    storage.NewMemoryStore(),
	}
	return app, mock
}

// execute runs one command line against app and returns stdout and stderr.
func execute(t *testing.T, app *App, args ...string) (string, string, error) {
	t.Helper()

	// Each run parses into a fresh Flags, like a new process would.
	app.Flags = NewFlags()
	cmd := CreateRootCommand(app)

	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append(args, "--env-file="))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
