package models

import "time"

// User is the persisted credential record. PasswordHash and RefreshToken are
// internal only and must never be serialized; responses use PublicUser.
type User struct {
	ID           string
	Email        string
	Name         string
	LastName     string
	PasswordHash string
	// RefreshToken holds the single most recently issued refresh token for
	// this user ("" if never issued). Overwritten on every token-issuing
	// event, which implicitly invalidates the previous one.
	RefreshToken string
	CreatedAt    time.Time
}

// PublicUser is the wire projection of User, built explicitly so that
// credential fields can never leak through serialization.
type PublicUser struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	LastName string `json:"lastName"`
}

// Public returns the user's wire projection.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Email:    u.Email,
		Name:     u.Name,
		LastName: u.LastName,
	}
}
