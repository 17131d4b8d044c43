package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContact_SetFieldAndField(t *testing.T) {
	tests := []struct {
		field string
		read  func(Contact) string
	}{
		{"company", func(c Contact) string { return c.Company }},
		{"Company", func(c Contact) string { return c.Company }},
		{"contactName", func(c Contact) string { return c.ContactName }},
		{"phoneno", func(c Contact) string { return c.PhoneNumber }},
		{"phoneNumber", func(c Contact) string { return c.PhoneNumber }},
		{"email", func(c Contact) string { return c.Email }},
		{"notes", func(c Contact) string { return c.Note }},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			var c Contact
			require.NoError(t, c.SetField(tt.field, "v-"+tt.field))
			assert.Equal(t, "v-"+tt.field, tt.read(c))

			got, err := c.Field(tt.field)
			require.NoError(t, err)
			assert.Equal(t, "v-"+tt.field, got)
		})
	}
}

func TestContact_SetField_RejectsIdentifiers(t *testing.T) {
	c := Contact{ContactID: 1, OwnerID: 42, CreatedAt: "2024-01-01T00:00:00.000Z"}
	for _, f := range []string{"contactID", "credID", "ownerId", "createdAt", ""} {
		assert.ErrorIs(t, c.SetField(f, "x"), ErrFieldNotSettable, f)
	}
	assert.Equal(t, Contact{ContactID: 1, OwnerID: 42, CreatedAt: "2024-01-01T00:00:00.000Z"}, c)
}

func TestContact_JSONWireNames(t *testing.T) {
	raw := `{"contactID":7,"company":"Acme","contactname":"Wile","phoneno":"555","email":"w@acme.test","note":"n","credID":42,"createdAt":"2024-05-01T10:00:00.000Z"}`

	var c Contact
	require.NoError(t, json.Unmarshal([]byte(raw), &c))
	assert.Equal(t, Contact{ContactID: 7, Company: "Acme", ContactName: "Wile", PhoneNumber: "555",
		Email: "w@acme.test", Note: "n", OwnerID: 42, CreatedAt: "2024-05-01T10:00:00.000Z"}, c)

	c.ContactID = 0
	b, err := json.Marshal(c)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "contactID", "create payloads carry no id")
	assert.Contains(t, string(b), `"credID":42`)
}

func TestContact_Values(t *testing.T) {
	c := Contact{ContactID: 3, Company: "Acme", OwnerID: 9, CreatedAt: "ts"}
	assert.Equal(t, []string{"3", "Acme", "", "", "", "", "9", "ts"}, c.Values())
}

func TestDraft(t *testing.T) {
	d := Draft{}
	require.NoError(t, d.Set("Company", "X"))
	require.NoError(t, d.Set("phone", "123"))
	assert.ErrorIs(t, d.Set("credID", "1"), ErrFieldNotSettable)

	c := d.Contact()
	assert.Equal(t, "X", c.Company)
	assert.Equal(t, "123", c.PhoneNumber)
	assert.Zero(t, c.ContactID)

	clone := d.Clone()
	clone["company"] = "Y"
	assert.Equal(t, "X", d["company"])
}

func TestIdentity_OwnerID(t *testing.T) {
	assert.Equal(t, int64(42), Identity{ID: "42"}.OwnerID())
	assert.Equal(t, int64(0), Identity{ID: "abc"}.OwnerID())
	assert.True(t, Identity{}.IsZero())
	assert.False(t, Identity{Email: "a@b.c"}.IsZero())
}
