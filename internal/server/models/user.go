package models

import "strings"

type User struct {
	ID           string
	Username     string
	PasswordHash string
	FirstName    string
	LastName     string
}

// Identity is the profile established after successful credential
// verification. It never carries the password digest.
type Identity struct {
	ID        string
	Username  string
	FirstName string
	LastName  string
}

// Identity derives the authenticated identity from a stored user record.
func (u *User) Identity() *Identity {
	return &Identity{
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}
}

// Name returns the identity's "firstName lastName", trimmed so that empty
// name parts do not leave stray spaces.
func (i *Identity) Name() string {
	return strings.TrimSpace(i.FirstName + " " + i.LastName)
}
