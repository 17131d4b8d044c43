package cli

import (
	"errors"
	"strings"

	"github.com/dmitrijs2005/gophcontacts/internal/client/contacts"
	"github.com/dmitrijs2005/gophcontacts/internal/client/models"
	"github.com/dmitrijs2005/gophcontacts/internal/client/services"
)

const msgLoginFirst = "Please log in to see data"

// userError pairs a message for the user with the cause.
type userError struct {
	msg string
	err error
}

func (e *userError) Error() string { return e.msg + ": " + e.err.Error() }
func (e *userError) Unwrap() error { return e.err }

// usageError is printed as is.
type usageError string

func (e usageError) Error() string { return string(e) }

func isValidation(err error) bool {
	return errors.Is(err, services.ErrEmailRequired) ||
		errors.Is(err, services.ErrEmailInvalid) ||
		errors.Is(err, services.ErrPasswordMismatch)
}

// userMessage turns a command error into what the user gets to read. An
// empty result means there is nothing worth saying.
func userMessage(err error) string {
	var (
		ue   *userError
		fail *contacts.Failure
		use  usageError
	)

	switch {
	case err == nil, errors.Is(err, contacts.ErrReset):
		return ""
	case errors.As(err, &ue):
		return ue.msg
	case errors.As(err, &use):
		return string(use)
	case errors.As(err, &fail):
		return fail.Message
	case errors.Is(err, services.ErrEmailRequired):
		return "Please fill in your e-mail address"
	case errors.Is(err, services.ErrEmailInvalid):
		return "Please use a valid e-mail address!"
	case errors.Is(err, services.ErrPasswordMismatch):
		return "Careful now! The passwords you entered do not match"
	case errors.Is(err, contacts.ErrNotAuthenticated):
		return msgLoginFirst
	case errors.Is(err, contacts.ErrIndexOutOfRange):
		return "There is no contact with that number, try 'list'."
	case errors.Is(err, contacts.ErrFieldNotSettable):
		return "That field cannot be changed. Editable fields: " + strings.Join(models.EditableFields, ", ")
	default:
		return "Error: " + err.Error()
	}
}

// report prints the current notification, if any.
func (a *App) report() {
	if msg := a.notifier.Current(); msg != "" {
		printlnFn("✓ " + msg)
		a.notifier.Dismiss()
	}
}
