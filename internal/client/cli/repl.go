package cli

import (
	"bufio"
	"context"
	"fmt"
	"sort"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

type handler func(ctx context.Context, args []string) error

// command is one REPL verb. Commands with auth set are only offered once a
// session exists.
type command struct {
	name  string
	usage string
	auth  bool
	run   handler
}

// execIface defines the minimal surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	commands() []command
}

// runREPL starts a simple read–eval–print loop for the eTIMS CLI.
//
// It reads a line from reader, parses the first token as the command and the
// rest as its arguments, and dispatches to the matching handler. "help",
// "exit" and "quit" are handled here. A handler error is printed with
// formatError and the loop continues. The loop exits on EOF or on exit/quit.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	byName := make(map[string]command)
	for _, c := range a.commands() {
		byName[c.name] = c
	}

	for {
		printlnFn(fmt.Sprintf("etims %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			printlnFn(helpText(byName, a.isLoggedIn()))
			continue
		case "exit", "quit":
			printlnFn("Bye!")
			return
		}

		c, ok := byName[name]
		if !ok {
			printlnFn("Unknown command:", name)
			continue
		}
		if c.auth && !a.isLoggedIn() {
			printlnFn("Please login first")
			continue
		}
		if err := c.run(ctx, args); err != nil {
			printlnFn(formatError(err))
		}
	}
}

func helpText(byName map[string]command, loggedIn bool) string {
	names := make([]string, 0, len(byName))
	for name, c := range byName {
		if c.auth && !loggedIn {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("Available commands:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %-28s %s\n", strings.TrimSpace(name+" "+argsOf(byName[name].usage)), descOf(byName[name].usage))
	}
	b.WriteString("  exit")
	return b.String()
}

// usage strings have the form "<args> - description".
func argsOf(usage string) string {
	args, _, ok := strings.Cut(usage, " - ")
	if !ok {
		return ""
	}
	return args
}

func descOf(usage string) string {
	if _, desc, ok := strings.Cut(usage, " - "); ok {
		return desc
	}
	return usage
}
