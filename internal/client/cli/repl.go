package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn and printFn are test seams for user-facing output.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Refresh(ctx context.Context) error
	List(ctx context.Context) error
	Search(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Save(ctx context.Context, args []string) error
	Discard(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	New(ctx context.Context) error
	Browse(ctx context.Context) error
	report()
}

const (
	helpAnonymous     = "Available commands: register, login, exit"
	helpAuthenticated = "Available commands: (l)ist, refresh, search <text>, show <n>, edit <n> <field> <value>, save <n>, discard <n>, delete <n>, new, browse, whoami, logout, exit"
)

// needsLogin lists the commands that only make sense with a session.
var needsLogin = map[string]bool{
	"l": true, "list": true, "refresh": true, "search": true, "show": true,
	"edit": true, "save": true, "discard": true, "delete": true,
	"new": true, "browse": true, "whoami": true, "logout": true,
}

// runREPL starts a simple read-eval-print loop.
//
// It reads a line, parses the first word as the command and dispatches to
// methods on a. Errors returned by handlers are printed as user-facing
// messages, then the current notification, if any. The loop exits on EOF
// or when the user types "exit" or "quit".
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if s := statusFn(); s != "" {
			printFn(fmt.Sprintf("contacts %s> ", s))
		} else {
			printFn("contacts> ")
		}

		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		if needsLogin[cmd] && !a.isLoggedIn() {
			printlnFn(msgLoginFirst)
			continue
		}

		var cmdErr error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn(helpAuthenticated)
			} else {
				printlnFn(helpAnonymous)
			}
		case "register":
			cmdErr = a.Register(ctx)
		case "login":
			cmdErr = a.Login(ctx)
		case "logout":
			cmdErr = a.Logout(ctx)
		case "whoami":
			cmdErr = a.WhoAmI(ctx)
		case "refresh":
			cmdErr = a.Refresh(ctx)
		case "l", "list":
			cmdErr = a.List(ctx)
		case "search":
			cmdErr = a.Search(ctx, args)
		case "show":
			cmdErr = a.Show(ctx, args)
		case "edit":
			cmdErr = a.Edit(ctx, args)
		case "save":
			cmdErr = a.Save(ctx, args)
		case "discard":
			cmdErr = a.Discard(ctx, args)
		case "delete":
			cmdErr = a.Delete(ctx, args)
		case "new":
			cmdErr = a.New(ctx)
		case "browse":
			cmdErr = a.Browse(ctx)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
			continue
		}

		if cmdErr != nil {
			if msg := userMessage(cmdErr); msg != "" {
				printlnFn(msg)
			}
		}
		a.report()
	}
}
