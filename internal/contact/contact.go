// Package contact implements the contact book: a trimmed name/phone/email record
// and a Store that mirrors the in-memory list to a JSON file after every mutation.
package contact

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Contact is a single address book entry. Identity is the name, compared case-insensitively.
type Contact struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// New returns a Contact with every field trimmed of surrounding whitespace.
func New(name, phone, email string) Contact {
	return Contact{
		Name:  strings.TrimSpace(name),
		Phone: strings.TrimSpace(phone),
		Email: strings.TrimSpace(email),
	}
}

// String renders the contact as a single display line.
func (c Contact) String() string {
	return fmt.Sprintf("%s | phone: %s | email: %s", c.Name, c.Phone, c.Email)
}

// Matches reports whether name equals the contact's name, ignoring case.
func (c Contact) Matches(name string) bool {
	return strings.EqualFold(c.Name, strings.TrimSpace(name))
}

// rawContact mirrors Contact with pointers so missing fields can be told apart from empty ones.
type rawContact struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

// UnmarshalJSON decodes a contact object, rejecting unknown and missing fields.
func (c *Contact) UnmarshalJSON(data []byte) error {
	var raw rawContact
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	var missing []string
	if raw.Name == nil {
		missing = append(missing, "name")
	}
	if raw.Phone == nil {
		missing = append(missing, "phone")
	}
	if raw.Email == nil {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing field(s): %s", strings.Join(missing, ", "))
	}

	*c = New(*raw.Name, *raw.Phone, *raw.Email)
	return nil
}
