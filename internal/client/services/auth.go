// Package services contains the client's application services. The auth
// service validates sign-up and sign-in input, talks to the API and hands
// the issued token to the session.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/dmitrijs2005/gophcontacts/internal/client/auth"
	"github.com/dmitrijs2005/gophcontacts/internal/client/client"
	"github.com/dmitrijs2005/gophcontacts/internal/client/models"
)

var (
	ErrEmailRequired    = errors.New("email is required")
	ErrEmailInvalid     = errors.New("email is not valid")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// emailPattern is the address grammar the sign-up form has always used.
var emailPattern = regexp.MustCompile(`^(([^<>()\[\]\\.,;:\s@"]+(\.[^<>()\[\]\\.,;:\s@"]+)*)|(".+"))@((\[[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}])|(([a-zA-Z\-0-9]+\.)+[a-zA-Z]{2,}))$`)

// Session is what the auth service needs from the session manager.
type Session interface {
	Login(ctx context.Context, token string) error
	Logout(ctx context.Context) error
}

// AuthService defines the authentication operations of the CLI.
//
// Register and SignIn validate their input before any request is made.
// SignIn commits the issued token through the session; Register does not
// sign the user in. Passwords are passed as byte slices so callers can wipe
// them afterwards.
type AuthService interface {
	Register(ctx context.Context, email string, password, confirm []byte) error
	SignIn(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context) error
	Close(ctx context.Context) error
}

type authService struct {
	client  client.Client
	session Session
}

func NewAuthService(client client.Client, session Session) AuthService {
	return &authService{client: client, session: session}
}

// ValidateEmail checks the address the way the sign-up form does.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return ErrEmailRequired
	}
	if !emailPattern.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

func (a *authService) Register(ctx context.Context, email string, password, confirm []byte) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if string(password) != string(confirm) {
		return ErrPasswordMismatch
	}

	return a.client.Register(ctx, models.Registration{
		Email:           email,
		Password:        string(password),
		ConfirmPassword: string(confirm),
	})
}

func (a *authService) SignIn(ctx context.Context, email string, password []byte) error {
	if err := ValidateEmail(email); err != nil {
		return err
	}

	token, err := a.client.SignIn(ctx, models.Credentials{Email: email, Password: string(password)})
	if err != nil {
		return err
	}
	if token == "" {
		return fmt.Errorf("sign-in response: %w", auth.ErrInvalidToken)
	}
	return a.session.Login(ctx, token)
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
