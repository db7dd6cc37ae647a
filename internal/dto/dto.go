// Package dto holds the transfer records returned at the HTTP boundary.
// Models never leave the service layer directly; every response body is
// assembled here so derived fields (counts, relation id sets) have one shape.
package dto

import (
	"time"

	"bugtrack/internal/models"
)

type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	AuthorityLevel string    `json:"authorityLevel"`
	CreatedAt      time.Time `json:"createdAt"`
}

func FromUser(u *models.User) User {
	return User{
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		AuthorityLevel: u.AuthorityLevel,
		CreatedAt:      u.CreatedAt,
	}
}

// AuthResponse is returned by both register and login.
type AuthResponse struct {
	Token          string `json:"token"`
	Type           string `json:"type"` // always "Bearer"
	ID             string `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	AuthorityLevel string `json:"authorityLevel"`
}

func NewAuthResponse(token string, u *models.User) AuthResponse {
	return AuthResponse{
		Token:          token,
		Type:           "Bearer",
		ID:             u.ID,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		AuthorityLevel: u.AuthorityLevel,
	}
}

type Project struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	CreatedByID   string    `json:"createdById,omitempty"`
	CreatedByName string    `json:"createdByName,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	TeamMemberIDs []string  `json:"teamMemberIds"`
	TicketCount   int       `json:"ticketCount"`
}

func FromProject(p *models.Project) Project {
	ids := p.MemberIDs
	if ids == nil {
		ids = []string{}
	}
	return Project{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		CreatedByID:   p.CreatedBy,
		CreatedByName: p.CreatedByName,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		TeamMemberIDs: ids,
		TicketCount:   p.TicketCount,
	}
}

func FromProjects(ps []models.Project) []Project {
	out := make([]Project, 0, len(ps))
	for i := range ps {
		out = append(out, FromProject(&ps[i]))
	}
	return out
}

type Ticket struct {
	ID                   string    `json:"id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	ProjectID            string    `json:"projectId"`
	ProjectName          string    `json:"projectName"`
	CreatedByID          string    `json:"createdById,omitempty"`
	CreatedByName        string    `json:"createdByName,omitempty"`
	Priority             string    `json:"priority"`
	Status               string    `json:"status"`
	Type                 string    `json:"type"`
	TimeEstimate         *int      `json:"timeEstimate,omitempty"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
	AssignedDeveloperIDs []string  `json:"assignedDeveloperIds"`
	CommentCount         int       `json:"commentCount"`
}

func FromTicket(t *models.Ticket) Ticket {
	ids := t.AssigneeIDs
	if ids == nil {
		ids = []string{}
	}
	return Ticket{
		ID:                   t.ID,
		Title:                t.Title,
		Description:          t.Description,
		ProjectID:            t.ProjectID,
		ProjectName:          t.ProjectName,
		CreatedByID:          t.CreatedBy,
		CreatedByName:        t.CreatedByName,
		Priority:             string(t.Priority),
		Status:               string(t.Status),
		Type:                 string(t.Type),
		TimeEstimate:         t.TimeEstimate,
		CreatedAt:            t.CreatedAt,
		UpdatedAt:            t.UpdatedAt,
		AssignedDeveloperIDs: ids,
		CommentCount:         t.CommentCount,
	}
}

func FromTickets(ts []models.Ticket) []Ticket {
	out := make([]Ticket, 0, len(ts))
	for i := range ts {
		out = append(out, FromTicket(&ts[i]))
	}
	return out
}

type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	TicketID  string    `json:"ticketId"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromComment(c *models.Comment) Comment {
	return Comment{
		ID:        c.ID,
		Content:   c.Content,
		TicketID:  c.TicketID,
		UserID:    c.UserID,
		UserName:  c.UserName,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func FromComments(cs []models.Comment) []Comment {
	out := make([]Comment, 0, len(cs))
	for i := range cs {
		out = append(out, FromComment(&cs[i]))
	}
	return out
}
