package models

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is an account known to the credential directory. PasswordHash is a
// bcrypt hash and never leaves the server.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}

// Clone returns a copy safe to hand out of an in-memory store.
func (u *User) Clone() *User {
	c := *u
	return &c
}

// Identity is what a session token carries.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// CanModify reports whether the actor may update or delete content owned
// by authorID.
func (i Identity) CanModify(authorID string) bool {
	return i.IsAdmin() || (i.ID != "" && i.ID == authorID)
}

// RosterAccount is one built-in demo login.
type RosterAccount struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
}
