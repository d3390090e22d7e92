package system_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/absmach/warden/system"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateSuccess(t *testing.T) {
	t.Parallel()

	e := system.NewExecutor(
		system.WithUpdateCommands(
			[]string{"sh", "-c", "echo refreshed"},
			[]string{"sh", "-c", "echo upgraded"},
		),
	)

	result := e.Update(context.Background())
	assert.True(t, result.Success)
	assert.Contains(t, result.UpdateOutput, "refreshed")
	assert.Contains(t, result.UpgradeOutput, "upgraded")
	assert.Empty(t, result.Error)
}

func TestUpdateRefreshTimeoutSkipsUpgrade(t *testing.T) {
	t.Parallel()

	marker := filepath.Join(t.TempDir(), "upgraded")

	e := system.NewExecutor(
		system.WithUpdateCommands(
			[]string{"sleep", "10"},
			[]string{"touch", marker},
		),
		system.WithUpdateTimeouts(50*time.Millisecond, time.Minute),
	)

	result := e.Update(context.Background())
	assert.False(t, result.Success)
	assert.Equal(t, "update operation timed out", result.Error)

	// The upgrade step must never have started.
	_, err := os.Stat(marker)
	assert.True(t, os.IsNotExist(err))
}

func TestUpdateUpgradeTimeout(t *testing.T) {
	t.Parallel()

	e := system.NewExecutor(
		system.WithUpdateCommands(
			[]string{"sh", "-c", "echo refreshed"},
			[]string{"sleep", "10"},
		),
		system.WithUpdateTimeouts(time.Minute, 50*time.Millisecond),
	)

	result := e.Update(context.Background())
	assert.False(t, result.Success)
	assert.Equal(t, "update operation timed out", result.Error)
	assert.Contains(t, result.UpdateOutput, "refreshed")
}

func TestUpdateNonZeroExit(t *testing.T) {
	t.Parallel()

	e := system.NewExecutor(
		system.WithUpdateCommands(
			[]string{"sh", "-c", "echo refresh-failed >&2; exit 1"},
			[]string{"sh", "-c", "echo upgraded"},
		),
	)

	result := e.Update(context.Background())
	assert.False(t, result.Success)
	assert.Contains(t, result.Errors, "refresh-failed")
	// A failed exit code is not a timeout and both outputs are surfaced.
	assert.Contains(t, result.UpgradeOutput, "upgraded")
	assert.Empty(t, result.Error)
}

func TestUpdateMissingBinary(t *testing.T) {
	t.Parallel()

	e := system.NewExecutor(
		system.WithUpdateCommands(
			[]string{"/nonexistent/package-manager", "update"},
			[]string{"sh", "-c", "echo upgraded"},
		),
	)

	result := e.Update(context.Background())
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.Empty(t, result.UpgradeOutput)
}

func TestRebootInitiated(t *testing.T) {
	t.Parallel()

	e := system.NewExecutor(system.WithRebootCommand([]string{"true"}))

	result := e.Reboot(context.Background())
	require.True(t, result.Success)
	assert.Equal(t, "reboot initiated", result.Message)
}

func TestRebootStartFailure(t *testing.T) {
	t.Parallel()

	e := system.NewExecutor(system.WithRebootCommand([]string{"/nonexistent/reboot"}))

	result := e.Reboot(context.Background())
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
}
