package models

// User represents a registered user in the system
type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Name         string `json:"name"`
	Email        string `json:"email,omitempty"`
	PasswordHash string `json:"-"` // Not serialized
}

// Ref returns the embeddable display identity for blog responses
func (u *User) Ref() *UserRef {
	return &UserRef{ID: u.ID, Username: u.Username, Name: u.Name}
}
