package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophcontacts/internal/client/client"
)

// getSimpleText, getTextWithDefault and getPassword are indirections used to
// facilitate testing.
var (
	getSimpleText      = GetSimpleText
	getTextWithDefault = GetTextWithDefault
	getPassword        = GetPassword
)

const (
	msgSignedUp     = "Sign-up successful, welcome to the community!"
	msgSignedIn     = "Sign-in successful, welcome back!"
	msgSignUpFailed = "Aiaiai! Something went wrong during signing up. Please contact us!"
	msgSignInDenied = "Sign in unsuccessful, try using your correct email and password (:"
	msgSignInFailed = "This is strange... Something went wrong signing you in"
	msgLoggedOut    = "You are logged out."
)

// Register prompts for an email and a password twice and creates the
// account. It does not sign the user in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	confirm, err := getPassword("Confirm password", a.out)
	if err != nil {
		return err
	}
	defer wipe(confirm)

	if err := a.authService.Register(ctx, email, password, confirm); err != nil {
		if isValidation(err) {
			return err
		}
		return &userError{msg: msgSignUpFailed, err: err}
	}

	a.notifier.Show(msgSignedUp)
	return nil
}

// Login prompts for credentials, offering the email used last time, and
// signs in. The contact list loads as part of the session change.
func (a *App) Login(ctx context.Context) error {
	last, err := a.tokens.LastEmail(ctx)
	if err != nil {
		a.logger.Warn(ctx, "could not read last email", "error", err)
	}

	email, err := getTextWithDefault(a.reader, "Enter email", last, a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}
	defer wipe(password)

	if err := a.authService.SignIn(ctx, email, password); err != nil {
		switch {
		case isValidation(err):
			return err
		case errors.Is(err, client.ErrUnauthorized):
			return &userError{msg: msgSignInDenied, err: err}
		default:
			return &userError{msg: msgSignInFailed, err: err}
		}
	}

	a.notifier.Show(msgSignedIn)
	if err := a.contacts.LastError(); err != nil {
		printlnFn(userMessage(err))
	}
	return nil
}

// Logout ends the session; every component resets.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(ctx); err != nil {
		return err
	}
	printlnFn(msgLoggedOut)
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	id := a.session.Identity()
	printlnFn(fmt.Sprintf("Email:   %s", orDash(id.Email)))
	printlnFn(fmt.Sprintf("User id: %s", orDash(id.ID)))
	printlnFn(fmt.Sprintf("Avatar:  %s", orDash(id.AvatarRef)))

	if exp := a.session.ExpiresAt(); !exp.IsZero() {
		left := time.Until(exp).Round(time.Second)
		printlnFn(fmt.Sprintf("Session: expires %s (in %s)", exp.Local().Format(time.DateTime), left))
	}
	if a.session.IsExpiringSoon() {
		printlnFn("Your session is about to expire, log in again to keep working.")
	}
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
