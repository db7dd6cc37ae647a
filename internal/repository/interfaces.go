package repository

import (
	"context"

	"bugtrack/internal/models"
)

// Repositories return (nil, nil) when a lookup misses; services translate
// that into apperr.NotFound. Mutations that touch more than one row run in
// a single transaction inside the implementation.

type UserRepository interface {
	// Create fills ID and timestamps on success.
	Create(ctx context.Context, u *models.User, passwordHash string) error
	GetByEmail(ctx context.Context, email string) (*models.User, string /*passwordHash*/, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, q string, limit, offset int) ([]models.User, int, error)
	UpdateLevel(ctx context.Context, id, level string) (*models.User, error)
}

type ProjectRepository interface {
	// Create inserts the project and the creator's membership row together.
	Create(ctx context.Context, p *models.Project) error
	Get(ctx context.Context, id string) (*models.Project, error)
	List(ctx context.Context) ([]models.Project, error)
	ListByMember(ctx context.Context, userID string) ([]models.Project, error)
	Update(ctx context.Context, p *models.Project) error
	// Delete removes comments, assignment rows, tickets, membership rows
	// and the project itself, in that order, in one transaction.
	Delete(ctx context.Context, id string) error
	// AddMember/RemoveMember are idempotent against the join table.
	AddMember(ctx context.Context, projectID, userID string) error
	RemoveMember(ctx context.Context, projectID, userID string) error
}

type TicketRepository interface {
	Create(ctx context.Context, t *models.Ticket) error
	Get(ctx context.Context, id string) (*models.Ticket, error)
	List(ctx context.Context, f TicketFilter) ([]models.Ticket, error)
	Count(ctx context.Context, f TicketFilter) (int, error)
	Update(ctx context.Context, t *models.Ticket) error
	// Delete removes the ticket's comments and assignment rows with it,
	// in one transaction.
	Delete(ctx context.Context, id string) error
	Assign(ctx context.Context, ticketID, userID string) error
	Unassign(ctx context.Context, ticketID, userID string) error
	CountByProject(ctx context.Context, projectID string) (int, error)
	// CountBy groups ticket counts by one of status|priority|type.
	CountBy(ctx context.Context, field string) (map[string]int, error)
}

type CommentRepository interface {
	Create(ctx context.Context, c *models.Comment) error
	Get(ctx context.Context, id string) (*models.Comment, error)
	ListByTicket(ctx context.Context, ticketID string) ([]models.Comment, error)
	Update(ctx context.Context, c *models.Comment) error
	Delete(ctx context.Context, id string) error
	CountByTicket(ctx context.Context, ticketID string) (int, error)
}
