// Package tool runs the external programs the pipeline drives: the
// renderer, the image tool and the container tool.
package tool

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Longest renderer output line the streaming reader accepts.
const maxLineLen = 1 << 20

// A single external program invocation.
type Command struct {
	Name string
	Args []string

	// Working directory; empty means the current directory.
	Dir string
}

// New builds a command from a program name and its arguments.
func New(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Name
	}
	return c.Name + " " + strings.Join(c.Args, " ")
}

// The captured outcome of a finished command.
type Result struct {
	Stdout []byte
	Stderr []byte

	// Process exit code; 0 indicates success.
	ExitCode int
}

// Success reports whether the command exited with status 0.
func (r *Result) Success() bool {
	return r != nil && r.ExitCode == 0
}

// Runner is implemented by anything that can execute external commands.
// A non-nil error is only returned when the process could not be started or
// was cancelled; a non-zero exit is reported through the exit code.
type Runner interface {
	// Run the command to completion and capture its output.
	Run(ctx context.Context, cmd Command) (*Result, error)

	// Run the command to completion, delivering each line of its merged
	// stdout and stderr to onLine as it is produced. Lines are delivered
	// from a single goroutine.
	Stream(ctx context.Context, cmd Command, onLine func(line string)) (int, error)
}

type execRunner struct{}

// NewExecRunner returns a Runner that spawns real processes.
func NewExecRunner() Runner {
	return execRunner{}
}

func (execRunner) Run(ctx context.Context, c Command) (*Result, error) {
	cmd := buildCmd(ctx, c)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrSpawn, c.Name, err)
	}

	exitCode, err := waitExit(ctx, cmd)
	if err != nil {
		return nil, err
	}

	return &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		ExitCode: exitCode,
	}, nil
}

func (execRunner) Stream(ctx context.Context, c Command, onLine func(string)) (int, error) {
	cmd := buildCmd(ctx, c)

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pw.Close()
		return -1, fmt.Errorf("%w: %s: %v", ErrSpawn, c.Name, err)
	}

	scanDone := make(chan struct{})
	go func() {
		defer close(scanDone)
		scanner := bufio.NewScanner(pr)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineLen)
		for scanner.Scan() {
			if onLine != nil {
				onLine(strings.TrimSpace(scanner.Text()))
			}
		}

		// Keep draining so the child never blocks on a full pipe.
		io.Copy(io.Discard, pr)
	}()

	exitCode, err := waitExit(ctx, cmd)
	pw.Close()
	<-scanDone

	return exitCode, err
}

func buildCmd(ctx context.Context, c Command) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	setProcessGroup(cmd)
	return cmd
}

func waitExit(ctx context.Context, cmd *exec.Cmd) (int, error) {
	err := cmd.Wait()
	if err == nil {
		return 0, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return -1, fmt.Errorf("%w: %s: %v", ErrCancelled, cmd.Path, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return -1, fmt.Errorf("%w: %s: %v", ErrSpawn, cmd.Path, err)
}

// LookPath resolves a program name the way Run would.
func LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return path, nil
}
