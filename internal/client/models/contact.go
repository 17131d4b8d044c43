// Package models defines the records exchanged with the contacts API and
// the client-side identity derived from the session token.
package models

import (
	"errors"
	"strconv"
	"strings"
)

var ErrFieldNotSettable = errors.New("field is not settable")

// Contact is one entry of the directory. Wire names follow the API.
//
// ContactID is assigned by the server and omitted from create payloads.
// OwnerID is stamped once at creation and never edited.
type Contact struct {
	ContactID   int64  `json:"contactID,omitempty"`
	Company     string `json:"company"`
	ContactName string `json:"contactname"`
	PhoneNumber string `json:"phoneno"`
	Email       string `json:"email"`
	Note        string `json:"note"`
	OwnerID     int64  `json:"credID"`
	CreatedAt   string `json:"createdAt"`
}

// Field names accepted by SetField. Lookups are case-insensitive and also
// accept the camel-case spellings.
const (
	FieldCompany     = "company"
	FieldContactName = "contactname"
	FieldPhoneNumber = "phoneno"
	FieldEmail       = "email"
	FieldNote        = "note"
)

// EditableFields lists the settable fields in display order.
var EditableFields = []string{FieldCompany, FieldContactName, FieldPhoneNumber, FieldEmail, FieldNote}

var fieldAliases = map[string]string{
	"company":     FieldCompany,
	"contactname": FieldContactName,
	"name":        FieldContactName,
	"phoneno":     FieldPhoneNumber,
	"phonenumber": FieldPhoneNumber,
	"phone":       FieldPhoneNumber,
	"email":       FieldEmail,
	"e-mail":      FieldEmail,
	"note":        FieldNote,
	"notes":       FieldNote,
}

// CanonicalField resolves a user-supplied field name to one of the Field*
// constants.
func CanonicalField(name string) (string, error) {
	f, ok := fieldAliases[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return "", ErrFieldNotSettable
	}
	return f, nil
}

func (c *Contact) fieldPtr(field string) (*string, error) {
	f, err := CanonicalField(field)
	if err != nil {
		return nil, err
	}
	switch f {
	case FieldCompany:
		return &c.Company, nil
	case FieldContactName:
		return &c.ContactName, nil
	case FieldPhoneNumber:
		return &c.PhoneNumber, nil
	case FieldEmail:
		return &c.Email, nil
	default:
		return &c.Note, nil
	}
}

// SetField assigns value to an editable field.
func (c *Contact) SetField(field, value string) error {
	p, err := c.fieldPtr(field)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

// Field reads an editable field.
func (c Contact) Field(field string) (string, error) {
	p, err := c.fieldPtr(field)
	if err != nil {
		return "", err
	}
	return *p, nil
}

// Values returns the string form of every field, identifiers included.
func (c Contact) Values() []string {
	return []string{
		strconv.FormatInt(c.ContactID, 10),
		c.Company,
		c.ContactName,
		c.PhoneNumber,
		c.Email,
		c.Note,
		strconv.FormatInt(c.OwnerID, 10),
		c.CreatedAt,
	}
}
