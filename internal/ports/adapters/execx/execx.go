// Package execx is the real Executor backed by os/exec.
package execx

import (
	"bytes"
	"context"
	"os/exec"
)

type Executor struct{}

func New() Executor { return Executor{} }

func (Executor) Run(ctx context.Context, name string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.Bytes(), stderr.Bytes(), err
}

func (Executor) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
