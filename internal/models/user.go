package models

import (
	"strings"
	"time"
)

// Authority levels. Flat string tiers; USER is the self-registration default.
const (
	LevelUser  = "USER"
	LevelAdmin = "ADMIN"
)

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	AuthorityLevel string    `json:"authorityLevel"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
