// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other
// languages, but without inheritance. Go favours composition over inheritance.
package model

import "time"

// User represents a registered account as the API returns it.
//
// WHY ID string?
// The server assigns identifiers and the client never does arithmetic on
// them, so we keep them opaque. A string survives any ID scheme the server
// might use (numeric, xid, uuid) without a schema change on our end.
//
// The profile fields (Position, CompanyName, CompanyWebsite) are optional at
// registration and may be empty. We use zero values rather than nullable
// pointers — simpler to work with and safe to display.
type User struct {
	ID             string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	Position       string    `json:"position"`
	CompanyName    string    `json:"companyName"`
	CompanyWebsite string    `json:"companyWebsite"`
	IsActive       bool      `json:"isActive"` // email verification flag
	Role           string    `json:"role"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// FullName joins the name parts for display, tolerating either being empty.
func (u *User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	default:
		return u.FirstName + " " + u.LastName
	}
}
