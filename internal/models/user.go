package models

import "time"

// User is a Google-authenticated visitor session, keyed by email
type User struct {
	Email     string    `json:"email" validate:"required,email"`
	Name      string    `json:"name,omitempty" validate:"max=200"`
	Picture   string    `json:"picture,omitempty" validate:"omitempty,url"`
	FirstSeen time.Time `json:"firstSeen"`
	LastSeen  time.Time `json:"lastSeen"`
	Location  string    `json:"location,omitempty"`
}

func (u *User) GetID() string   { return u.Email }
func (u *User) SetID(id string) { u.Email = id }
