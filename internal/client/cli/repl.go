package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/licensekeeper/internal/client/services"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the command surface the REPL drives. App implements it.
type execIface interface {
	state() services.State
	Signup(ctx context.Context) error
	Login(ctx context.Context) error
	Generate(ctx context.Context, args []string) error
	Verify(ctx context.Context, args []string) error
	Inspect(ctx context.Context, args []string) error
	Status(ctx context.Context) error
	Logout(ctx context.Context) error
}

func helpFor(st services.State) string {
	switch st {
	case services.StateGenerate:
		return "Available commands: generate [days], verify <key>, status, logout, exit"
	case services.StateNeedsKey:
		return "Available commands: verify <key>, inspect [key], status, logout, exit"
	case services.StateLicensed:
		return "Available commands: verify [key], inspect [key], status, logout, exit"
	default:
		return "Available commands: signup, login, exit"
	}
}

// runREPL reads commands from reader until EOF, "exit" or "quit".
// Command errors are reported by the handlers themselves.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("lk %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpFor(a.state()))
		case "signup":
			_ = a.Signup(ctx)
		case "login":
			_ = a.Login(ctx)
		case "generate":
			_ = a.Generate(ctx, args)
		case "verify":
			_ = a.Verify(ctx, args)
		case "inspect":
			_ = a.Inspect(ctx, args)
		case "status":
			_ = a.Status(ctx)
		case "logout":
			_ = a.Logout(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
