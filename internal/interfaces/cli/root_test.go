package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unicpatent/unic-ip/internal/config"
	"github.com/unicpatent/unic-ip/internal/infrastructure/monitoring/logging"
)

func contextWithTestCLIContext(t *testing.T) context.Context {
	t.Helper()
	return context.WithValue(context.Background(), cliContextKey{}, &CLIContext{
		Config:       &config.Config{},
		Logger:       logging.NewNopLogger(),
		OutputFormat: "table",
		Timeout:      time.Second,
	})
}

func TestNewRootCommand_Structure(t *testing.T) {
	cmd := NewRootCommand()

	assert.Equal(t, "unicip", cmd.Use)

	names := make([]string, 0)
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	assert.Contains(t, names, "search")
	assert.Contains(t, names, "export")
	assert.Contains(t, names, "annuity")
}

func TestNewRootCommand_GlobalFlags(t *testing.T) {
	cmd := NewRootCommand()
	pf := cmd.PersistentFlags()

	for _, name := range []string{"config", "log-level", "output", "timeout"} {
		assert.NotNil(t, pf.Lookup(name), "missing flag %q", name)
	}

	require.NoError(t, pf.Parse([]string{"--output", "json", "--log-level", "debug"}))
	out, err := pf.GetString("output")
	require.NoError(t, err)
	assert.Equal(t, "json", out)
}

func TestSearchCmd_RequiresArgument(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"search", "registered"})

	err := cmd.Execute()
	require.Error(t, err)
}

func TestAnnuityScheduleCmd_RejectsBadDate(t *testing.T) {
	cmd := newAnnuityScheduleCmd()
	cmd.SetContext(contextWithTestCLIContext(t))
	cmd.SetArgs([]string{"not-a-date"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unparseable")
}
