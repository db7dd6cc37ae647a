package models

import "time"

type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"createdBy"` // user id, empty if creator unknown
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Derived at query time from the membership join table and the
	// tickets table; never written directly.
	CreatedByName string   `json:"createdByName"`
	MemberIDs     []string `json:"memberIds"`
	TicketCount   int      `json:"ticketCount"`
}
