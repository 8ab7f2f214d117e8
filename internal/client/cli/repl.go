package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	Register(ctx context.Context) error
	Verify(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
}

const helpText = "Available commands: register, verify, login, logout, whoami, help, exit"

// runREPL starts a simple read–eval–print loop for the AuthKeeper CLI.
//
// Command lines are read from reader, the same reader the interactive
// prompts use, so piped input keeps its order. The first token selects the
// command:
//
//	help           show available commands
//	register       create an account
//	verify         confirm the account email with a one-time code
//	login          authenticate
//	logout         remove the stored session
//	whoami         print the stored profile
//	exit | quit    leave the program
//
// Handler errors are reported to the user and the loop continues. The loop
// exits on EOF or on "exit"/"quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("ak %s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			if err != nil {
				return
			}
			continue
		}
		cmd := parts[0]

		var cmdErr error
		switch cmd {
		case "help":
			printlnFn(helpText)

		case "register":
			cmdErr = a.Register(ctx)

		case "verify":
			cmdErr = a.Verify(ctx)

		case "login":
			cmdErr = a.Login(ctx)

		case "logout":
			cmdErr = a.Logout(ctx)

		case "whoami":
			cmdErr = a.WhoAmI(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if cmdErr != nil {
			printlnFn(fmt.Sprintf("%s: %v", cmd, cmdErr))
		}
	}
}
