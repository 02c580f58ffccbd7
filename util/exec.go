package util

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner runs external commands. It is the only way the rest of the code spawns processes,
// so tests can swap in a fake.
type Runner interface {
	// Output runs the command and returns its stdout.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Run runs the command and discards its output.
	Run(ctx context.Context, name string, args ...string) error
}

// ExecRunner implements Runner with os/exec.
type ExecRunner struct{}

// Output runs name with args and returns stdout. Stderr is folded into the error.
func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return out, commandError(name, args, err, stderr.String())
	}
	return out, nil
}

// Run runs name with args and reports a non-zero exit as an error.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) error {
	_, err := r.Output(ctx, name, args...)
	return err
}

func commandError(name string, args []string, err error, stderr string) error {
	cmdLine := strings.TrimSpace(name + " " + strings.Join(args, " "))
	if msg := strings.TrimSpace(stderr); msg != "" {
		return fmt.Errorf("%s: %w: %s", cmdLine, err, msg)
	}
	return fmt.Errorf("%s: %w", cmdLine, err)
}
