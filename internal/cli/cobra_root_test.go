package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobsite-tracker/internal/config"
	"jobsite-tracker/internal/repository/sqlite"
	"jobsite-tracker/internal/services"
)

// rootFixture runs the real command tree against one in-memory database
type rootFixture struct {
	repo       sqlite.Repository
	configFile string
	opened     int
	closed     int
	lastConfig *config.Config
}

func newRootFixture(t *testing.T) *rootFixture {
	t.Helper()
	t.Setenv("JT_PROFILE_ID", "")
	t.Setenv("JT_HOURLY_RATE", "")

	repo, err := config.CreateTestRepository()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.toml")
	content := "[receipts]\ndir = \"" + filepath.ToSlash(filepath.Join(dir, "receipts")) + "\"\n\n" +
		"[server]\naddr = \"127.0.0.1:9191\"\n"
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	return &rootFixture{repo: repo, configFile: configFile}
}

func (f *rootFixture) open(cfg *config.Config, logger logrus.FieldLogger) (*services.Container, func() error, error) {
	f.opened++
	f.lastConfig = cfg
	return services.NewContainer(f.repo, cfg, logger), func() error {
		f.closed++
		return nil
	}, nil
}

// run executes one command line and returns what it printed
func (f *rootFixture) run(args ...string) (string, error) {
	out := &bytes.Buffer{}
	root := NewRootCommand(f.open)
	root.SetIO(strings.NewReader(""), out)
	root.SetArgs(append([]string{"--config", f.configFile}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestRootCommand_ProfileLifecycle(t *testing.T) {
	f := newRootFixture(t)

	out, err := f.run("profile", "add", "--admin", "Olive", "olive@example.com")
	require.NoError(t, err)
	assert.Contains(t, out, "Created profile")
	assert.Contains(t, out, "1: Olive <olive@example.com> (admin)")
	assert.Equal(t, 1, f.opened)
	assert.Equal(t, 1, f.closed, "the database is released after each command")

	_, err = f.run("profile", "add", "Ann", "ann@example.com")
	require.NoError(t, err)

	out, err = f.run("profile", "list", "--profile", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Olive")
	assert.Contains(t, out, "Ann")
	assert.Equal(t, int64(1), f.lastConfig.Application.ProfileID)

	_, err = f.run("entry", "list")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no profile selected")

	_, err = f.run("profile", "add", "Olive", "not-an-email")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create profile")
	assert.Equal(t, f.opened, f.closed)
}

func TestRootCommand_FlagsOverrideConfigFile(t *testing.T) {
	f := newRootFixture(t)

	out, err := f.run("config", "show", "--hourly-rate", "42", "--addr", ":7000")
	require.NoError(t, err)
	assert.Zero(t, f.opened, "config commands do not open the database")
	assert.Contains(t, out, `hourly_rate = "42"`)
	assert.Contains(t, out, `addr = ":7000"`)
	assert.Contains(t, out, "receipts")

	out, err = f.run("config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, `addr = "127.0.0.1:9191"`)
	assert.NotContains(t, out, "hourly_rate")
}

func TestRootCommand_Errors(t *testing.T) {
	f := newRootFixture(t)

	tests := []struct {
		name          string
		args          []string
		expectedError string
	}{
		{
			name:          "bad hourly rate",
			args:          []string{"report", "summary", "--hourly-rate", "lots"},
			expectedError: `invalid --hourly-rate "lots"`,
		},
		{
			name:          "bad default overhead",
			args:          []string{"report", "invoice", "--default-overhead", "x"},
			expectedError: "invalid --default-overhead",
		},
		{
			name:          "negative overhead in config",
			args:          []string{"report", "invoice", "--default-overhead", "-1"},
			expectedError: "failed to load configuration",
		},
		{
			name:          "wrong arg count",
			args:          []string{"profile", "add", "Ann"},
			expectedError: "accepts 2 arg(s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.run(tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
	assert.Zero(t, f.opened)

	root := NewRootCommand(f.open)
	root.SetIO(strings.NewReader(""), &bytes.Buffer{})
	root.SetArgs([]string{"--config", filepath.Join(t.TempDir(), "missing.toml"), "profile", "list"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load configuration")
}

func TestNeedsServices(t *testing.T) {
	root := NewRootCommand(nil)

	tests := []struct {
		path     []string
		expected bool
	}{
		{[]string{"entry", "list"}, true},
		{[]string{"estimate", "revise"}, true},
		{[]string{"config", "show"}, false},
		{[]string{"config", "init"}, false},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.path, " "), func(t *testing.T) {
			cmd, _, err := root.cmd.Find(tt.path)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, needsServices(cmd))
		})
	}

	assert.False(t, needsServices(&cobra.Command{Use: "help"}))
}

func TestConfigInitCommand(t *testing.T) {
	ta := setupTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	path := filepath.Join(ta.dir, "jt", "config.toml")

	require.NoError(t, NewConfigInitCommand(ta.app, path, false).Execute(ctx, nil))
	assert.Contains(t, ta.output(), "Wrote "+path)

	cfg, err := config.NewLoader().WithEnvFile("").WithConfigFile(path).Load()
	require.NoError(t, err)
	assert.Equal(t, "jobsite.db", cfg.Database.Filename)

	err = NewConfigInitCommand(ta.app, path, false).Execute(ctx, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pass --force")

	require.NoError(t, NewConfigInitCommand(ta.app, path, true).Execute(ctx, nil))
}

func TestProfileCommands(t *testing.T) {
	ta := setupTestApp(t)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	require.NoError(t, NewProfileAddCommand(ta.app, false).Execute(ctx, []string{"Cy", "cy@example.com"}))
	assert.Contains(t, ta.output(), "Cy <cy@example.com> (user)")

	err := NewProfileAddCommand(ta.app, false).Execute(ctx, []string{"Cy"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a name and an email")

	ta.as(ta.admin)
	require.NoError(t, NewProfileListCommand(ta.app).Execute(ctx, nil))
	out := ta.output()
	for _, name := range []string{"Olive", "Ann", "Ben", "Cy"} {
		assert.Contains(t, out, name)
	}

	ta.as(ta.ben)
	require.NoError(t, NewProfileListCommand(ta.app).Execute(ctx, nil))
	out = ta.output()
	assert.Contains(t, out, "Ben")
	assert.NotContains(t, out, "Olive")
}
