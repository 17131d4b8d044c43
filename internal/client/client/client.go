package client

import (
	"context"

	"github.com/dmitrijs2005/gophcontacts/internal/client/models"
)

// Client is the transport-agnostic contract for the contacts API.
type Client interface {
	Close() error
	Register(ctx context.Context, r models.Registration) error
	SignIn(ctx context.Context, c models.Credentials) (string, error)
	ListContacts(ctx context.Context) ([]models.Contact, error)
	UpdateContact(ctx context.Context, c models.Contact) error
	DeleteContact(ctx context.Context, contactID int64) error
	CreateContact(ctx context.Context, c models.Contact) (models.Contact, error)
}
