package command

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/ocasazza/atui/pkg/debug"
	"github.com/ocasazza/atui/pkg/navigation"
)

// ErrIncompleteContext is returned when execution is attempted without a
// fully resolved (domain, product, project) selection. The executor fails
// fast rather than dispatching a malformed query.
var ErrIncompleteContext = errors.New("no valid context for command execution")

// Result captures one finished execution.
type Result struct {
	Command  string // rendered command line, for display and history
	ExitCode int
	Stdout   string
	Stderr   string
	Success  bool
	At       time.Time
}

// Executor dispatches label operations as invocations of the actl binary.
// Execution is synchronous and blocks the UI thread for its duration; this
// is a deliberate, user-initiated stall, not a background task.
type Executor struct {
	binary  string
	history *History
}

// NewExecutor returns an Executor that spawns the given binary
// (default "actl") and records into history.
func NewExecutor(binary string, history *History) *Executor {
	if binary == "" {
		binary = "actl"
	}
	return &Executor{binary: binary, history: history}
}

// Argv builds the argument vector for an operation against a context:
// ctag, the operation name, the CQL fragment, the whitespace-split free
// arguments, and the optional dry-run flag.
func Argv(ctx navigation.Context, op Operation, freeArgs []string, dryRun bool) ([]string, error) {
	cql, ok := ctx.CQL()
	if !ok {
		return nil, ErrIncompleteContext
	}
	argv := []string{"ctag", op.Name(), cql}
	argv = append(argv, freeArgs...)
	if dryRun {
		argv = append(argv, "--dry-run")
	}
	return argv, nil
}

// Execute runs the operation and appends the captured result to history.
// A spawn failure (binary missing, not executable) is returned as an
// error with no result recorded; a non-zero exit is a recorded Result
// with Success=false, not an error.
func (e *Executor) Execute(ctx navigation.Context, op Operation, freeArgs []string, dryRun bool) (Result, error) {
	argv, err := Argv(ctx, op, freeArgs, dryRun)
	if err != nil {
		return Result{}, err
	}

	rendered := e.binary + " " + renderArgv(argv)
	debug.Log("executing: %s", rendered)

	cmd := exec.Command(e.binary, argv...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()
	exitCode := 0
	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) {
			exitCode = exitErr.ExitCode()
		} else {
			return Result{}, fmt.Errorf("spawning %s: %w", e.binary, runErr)
		}
	}

	result := Result{
		Command:  rendered,
		ExitCode: exitCode,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Success:  exitCode == 0,
		At:       time.Now(),
	}
	if e.history != nil {
		e.history.Append(result)
	}
	return result, nil
}

// renderArgv joins argv for display, quoting arguments with spaces so the
// shown command line round-trips mentally to what was executed.
func renderArgv(argv []string) string {
	parts := make([]string, len(argv))
	for i, a := range argv {
		if strings.ContainsAny(a, " \t") {
			parts[i] = fmt.Sprintf("%q", a)
		} else {
			parts[i] = a
		}
	}
	return strings.Join(parts, " ")
}
