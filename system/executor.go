// Package system performs the privileged host operations: package update
// and reboot. Failures are reported inside the Result, never as errors, so
// the caller decides whether to retry; the executor itself never does.
package system

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"time"
)

const (
	defRefreshTimeout = 5 * time.Minute
	defUpgradeTimeout = 30 * time.Minute
)

var (
	defRefreshCmd = []string{"sudo", "apt-get", "update", "-y"}
	defUpgradeCmd = []string{"sudo", "apt-get", "upgrade", "-y"}
	defRebootCmd  = []string{"sudo", "reboot"}
)

// Result carries the outcome of one privileged operation. It is produced
// once per invocation and not persisted.
type Result struct {
	Success       bool   `json:"success"`
	UpdateOutput  string `json:"update_output,omitempty"`
	UpgradeOutput string `json:"upgrade_output,omitempty"`
	Errors        string `json:"errors,omitempty"`
	Message       string `json:"message,omitempty"`
	Error         string `json:"error,omitempty"`
}

type Executor struct {
	refreshCmd     []string
	upgradeCmd     []string
	rebootCmd      []string
	refreshTimeout time.Duration
	upgradeTimeout time.Duration
}

type Option func(*Executor)

// WithUpdateCommands overrides the package index refresh and upgrade argv.
func WithUpdateCommands(refresh, upgrade []string) Option {
	return func(e *Executor) {
		e.refreshCmd = refresh
		e.upgradeCmd = upgrade
	}
}

// WithUpdateTimeouts overrides the per-step timeouts.
func WithUpdateTimeouts(refresh, upgrade time.Duration) Option {
	return func(e *Executor) {
		e.refreshTimeout = refresh
		e.upgradeTimeout = upgrade
	}
}

// WithRebootCommand overrides the reboot argv.
func WithRebootCommand(reboot []string) Option {
	return func(e *Executor) {
		e.rebootCmd = reboot
	}
}

func NewExecutor(opts ...Option) *Executor {
	e := &Executor{
		refreshCmd:     defRefreshCmd,
		upgradeCmd:     defUpgradeCmd,
		rebootCmd:      defRebootCmd,
		refreshTimeout: defRefreshTimeout,
		upgradeTimeout: defUpgradeTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Update refreshes the package index and then upgrades installed packages.
// Overall success requires both steps to exit cleanly. A timed-out step
// kills the underlying process and short-circuits: the upgrade never starts
// after a refresh timeout. The actual end state of a timed-out step is
// unknown and must be treated as uncertain by the caller.
func (e *Executor) Update(ctx context.Context) Result {
	refreshOut, refreshErrs, refreshErr := runStep(ctx, e.refreshCmd, e.refreshTimeout)
	if errors.Is(refreshErr, context.DeadlineExceeded) {
		return Result{
			Success:      false,
			UpdateOutput: refreshOut,
			Errors:       refreshErrs,
			Error:        "update operation timed out",
		}
	}
	if refreshErr != nil && !isExitError(refreshErr) {
		return Result{
			Success:      false,
			UpdateOutput: refreshOut,
			Errors:       refreshErrs,
			Error:        refreshErr.Error(),
		}
	}

	upgradeOut, upgradeErrs, upgradeErr := runStep(ctx, e.upgradeCmd, e.upgradeTimeout)
	if errors.Is(upgradeErr, context.DeadlineExceeded) {
		return Result{
			Success:       false,
			UpdateOutput:  refreshOut,
			UpgradeOutput: upgradeOut,
			Errors:        refreshErrs + upgradeErrs,
			Error:         "update operation timed out",
		}
	}

	result := Result{
		Success:       refreshErr == nil && upgradeErr == nil,
		UpdateOutput:  refreshOut,
		UpgradeOutput: upgradeOut,
		Errors:        refreshErrs + upgradeErrs,
	}
	if upgradeErr != nil && !isExitError(upgradeErr) {
		result.Error = upgradeErr.Error()
	}

	return result
}

// Reboot launches the detached power-off command and reports success as
// soon as it is initiated. It cannot wait for completion since the host
// shuts down underneath it.
func (e *Executor) Reboot(_ context.Context) Result {
	cmd := exec.Command(e.rebootCmd[0], e.rebootCmd[1:]...)
	if err := cmd.Start(); err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	if err := cmd.Process.Release(); err != nil {
		return Result{Success: false, Error: err.Error()}
	}

	return Result{Success: true, Message: "reboot initiated"}
}

func runStep(ctx context.Context, argv []string, timeout time.Duration) (stdout, stderr string, err error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var out, errs bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errs

	err = cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		err = context.DeadlineExceeded
	}

	return out.String(), errs.String(), err
}

func isExitError(err error) bool {
	var exitErr *exec.ExitError

	return errors.As(err, &exitErr)
}
