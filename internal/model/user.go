// Package model defines the data structures used throughout the application.
package model

// User is a person tracked by the app. Email is the identity key: logging in
// with an unseen email registers a new user, logging in with a known one
// returns the existing row.
//
// WHY string (not *string) FOR THE OPTIONAL FIELDS?
// Name, surname and location are free text that may be left blank. An empty
// string is the zero value and is stored as an empty string rather than NULL, which keeps
// scanning simple and is safe to display.
type User struct {
	ID       int64  `json:"user_id"  db:"user_id"`
	Email    string `json:"email"    db:"email"`
	Name     string `json:"name"     db:"name"`
	Surname  string `json:"surname"  db:"surname"`
	Location string `json:"location" db:"location"`
}
