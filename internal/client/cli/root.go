package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

// Root runs the REPL until the user exits. Commands and prompts share
// a.reader.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to AuthKeeper CLI (type 'help' for commands)")
	if a.reader == nil {
		a.reader = bufio.NewReader(os.Stdin)
	}
	runREPL(ctx, a, a.getStatus, a.reader)
}
