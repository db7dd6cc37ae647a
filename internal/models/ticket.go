package models

import "time"

// Closed enumerations for ticket fields. The zero value is invalid;
// defaults are applied at creation, unknown values are rejected.
type Priority string

const (
	PriorityLow    Priority = "LOW"
	PriorityMedium Priority = "MEDIUM"
	PriorityHigh   Priority = "HIGH"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusClosed     Status = "CLOSED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

type TicketType string

const (
	TypeBug     TicketType = "BUG"
	TypeFeature TicketType = "FEATURE"
)

func (t TicketType) Valid() bool {
	switch t {
	case TypeBug, TypeFeature:
		return true
	}
	return false
}

type Ticket struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ProjectID    string     `json:"projectId"` // immutable after creation
	CreatedBy    string     `json:"createdBy"`
	Priority     Priority   `json:"priority"`
	Status       Status     `json:"status"`
	Type         TicketType `json:"type"`
	TimeEstimate *int       `json:"timeEstimate,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`

	// Derived at query time.
	ProjectName   string   `json:"projectName"`
	CreatedByName string   `json:"createdByName"`
	AssigneeIDs   []string `json:"assigneeIds"`
	CommentCount  int      `json:"commentCount"`
}
