package models

// User is the singleton session record. At most one user is signed in at a
// time. Token carries a signed copy of the identity so a hand-edited
// session file cannot silently claim the admin role.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"isAdmin"`
	Token   string `json:"token,omitempty"`
}
