package contacts

import (
	"errors"

	"github.com/dmitrijs2005/gophcontacts/internal/client/models"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrFieldNotSettable = models.ErrFieldNotSettable

	// ErrReset is returned when the list was reset (the session ended)
	// while the request was in flight; its result was dropped.
	ErrReset = errors.New("contact list was reset during the request")
)

// Messages shown to the user.
const (
	MsgSaved        = "Changes saved!"
	MsgDeleted      = "Entry deleted successfully!"
	MsgLoadFailed   = "Couldn't load your contacts"
	MsgSaveFailed   = "Alas! Couldnt save changes"
	MsgDeleteFailed = "Failed to delete contact"
	MsgCreateFailed = "Failed adding new entry"
)

// Failure is a failed network operation: the message for the user and the
// underlying cause.
type Failure struct {
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err == nil {
		return f.Message
	}
	return f.Message + ": " + f.Err.Error()
}

func (f *Failure) Unwrap() error { return f.Err }
