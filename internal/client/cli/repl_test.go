package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }

func (f *fakeExec) record(name string) handler {
	return func(_ context.Context, args []string) error {
		f.calls = append(f.calls, name)
		f.args = append(f.args, args)
		return nil
	}
}

func (f *fakeExec) commands() []command {
	return []command{
		{name: "login", usage: "log in", run: func(ctx context.Context, args []string) error {
			f.loggedIn = true
			return f.record("login")(ctx, args)
		}},
		{name: "health", usage: "show server health", run: f.record("health")},
		{name: "invoice", usage: "<id> - show one invoice", auth: true, run: f.record("invoice")},
		{name: "sync", usage: "run a full sync", auth: true, run: func(context.Context, []string) error {
			f.calls = append(f.calls, "sync")
			return errors.New("vscu sync: server unavailable")
		}},
	}
}

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := capturePrintln(t)
	exec := &fakeExec{}

	input := strings.Join([]string{
		"invoice 1",
		"help",
		"login",
		"",
		"help",
		"invoice 42",
		"health extra args",
		"sync",
		"foobar",
		"exit",
		"health",
	}, "\n")

	runREPL(context.Background(), exec, func() string { return "(status)" }, rdr(input))

	assert.Equal(t, []string{"login", "invoice", "health", "sync"}, exec.calls)
	assert.Equal(t, []string{"42"}, exec.args[1])
	assert.Equal(t, []string{"extra", "args"}, exec.args[2])

	joined := strings.Join(*out, "\n")
	assert.Contains(t, joined, "etims (status)> ")
	assert.Contains(t, joined, "Please login first")
	assert.Contains(t, joined, "Error: vscu sync: server unavailable")
	assert.Contains(t, joined, "Unknown command: foobar")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	out := capturePrintln(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, rdr("help\n"))
	require.Len(t, *out, 3)
	assert.Contains(t, (*out)[1], "health")
	assert.NotContains(t, (*out)[1], "invoice")

	*out = nil
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, rdr("help\nquit\n"))
	assert.Contains(t, (*out)[1], "invoice <id>")
	assert.Contains(t, (*out)[1], "show one invoice")
}

func TestRunREPL_EOFEndsLoop(t *testing.T) {
	capturePrintln(t)
	exec := &fakeExec{}

	runREPL(context.Background(), exec, func() string { return "" }, rdr("health"))
	assert.Equal(t, []string{"health"}, exec.calls)
}
