package models

import "time"

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity is the authenticated caller, resolved from a token and passed by value to services.
type Identity struct {
	UserID   int64
	Username string
}

func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, Username: u.Username}
}

// Profile is the public view of a user; it never carries the password hash.
type Profile struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) Profile() Profile {
	return Profile{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}
