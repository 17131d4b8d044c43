package cli

import (
	"context"
	"fmt"
	"log"
)

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	id := a.session.Identity()
	if id.Email == "" {
		return "(signed in)"
	}
	return fmt.Sprintf("(%s)", id.Email)
}

// Root restores the previous session, starts the expiry watcher and runs
// the REPL until the user leaves.
func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to the contacts CLI (type 'help' for commands)")

	if err := a.session.Restore(ctx); err != nil {
		log.Printf("could not restore session: %v", err)
	}
	if a.isLoggedIn() {
		printlnFn(fmt.Sprintf("Welcome back, %s! %d contact(s) loaded.", a.session.Identity().Email, a.contacts.Len()))
		if err := a.contacts.LastError(); err != nil {
			printlnFn(userMessage(err))
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go a.StartExpiryWatcher(ctx, a.config.ExpiryCheckInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}
