package service

import (
	"context"
	"strings"

	"bugtrack/internal/apperr"
	"bugtrack/internal/dto"
	"bugtrack/internal/models"
	"bugtrack/internal/repository"
)

// TicketInput carries the caller-settable ticket fields. Blank enum fields
// get the conventional defaults on create and are rejected on update.
type TicketInput struct {
	Title        string
	Description  string
	ProjectID    string
	Priority     string
	Status       string
	Type         string
	TimeEstimate *int
}

type TicketService struct {
	tickets  repository.TicketRepository
	projects repository.ProjectRepository
	users    repository.UserRepository
}

func NewTicketService(tickets repository.TicketRepository, projects repository.ProjectRepository, users repository.UserRepository) *TicketService {
	return &TicketService{tickets: tickets, projects: projects, users: users}
}

func (s *TicketService) List(ctx context.Context, f repository.TicketFilter) ([]dto.Ticket, int, error) {
	ts, err := s.tickets.List(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.tickets.Count(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	return dto.FromTickets(ts), total, nil
}

func (s *TicketService) Get(ctx context.Context, id string) (dto.Ticket, error) {
	t, err := s.tickets.Get(ctx, id)
	if err != nil {
		return dto.Ticket{}, err
	}
	if t == nil {
		return dto.Ticket{}, apperr.NotFound("ticket", id)
	}
	return dto.FromTicket(t), nil
}

func (s *TicketService) ListByProject(ctx context.Context, projectID string) ([]dto.Ticket, error) {
	ts, err := s.tickets.List(ctx, repository.TicketFilter{ProjectID: projectID})
	if err != nil {
		return nil, err
	}
	return dto.FromTickets(ts), nil
}

// ListByUser returns tickets the user is assigned to as a developer.
func (s *TicketService) ListByUser(ctx context.Context, userID string) ([]dto.Ticket, error) {
	ts, err := s.tickets.List(ctx, repository.TicketFilter{AssigneeID: userID})
	if err != nil {
		return nil, err
	}
	return dto.FromTickets(ts), nil
}

// Create resolves project and creator, applies MEDIUM/OPEN/BUG defaults
// for absent enum fields and rejects unknown values. The project binding
// is immutable afterwards.
func (s *TicketService) Create(ctx context.Context, in TicketInput, creatorEmail string) (dto.Ticket, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return dto.Ticket{}, apperr.Validation("title is required")
	}
	if strings.TrimSpace(in.ProjectID) == "" {
		return dto.Ticket{}, apperr.Validation("projectId is required")
	}

	creator, _, err := s.users.GetByEmail(ctx, creatorEmail)
	if err != nil {
		return dto.Ticket{}, err
	}
	if creator == nil {
		return dto.Ticket{}, apperr.NotFound("user", creatorEmail)
	}
	project, err := s.projects.Get(ctx, in.ProjectID)
	if err != nil {
		return dto.Ticket{}, err
	}
	if project == nil {
		return dto.Ticket{}, apperr.NotFound("project", in.ProjectID)
	}

	prio, status, typ, err := resolveEnums(in, true)
	if err != nil {
		return dto.Ticket{}, err
	}

	t := &models.Ticket{
		Title:        in.Title,
		Description:  strings.TrimSpace(in.Description),
		ProjectID:    project.ID,
		CreatedBy:    creator.ID,
		Priority:     prio,
		Status:       status,
		Type:         typ,
		TimeEstimate: in.TimeEstimate,
	}
	if err := s.tickets.Create(ctx, t); err != nil {
		return dto.Ticket{}, err
	}
	return s.Get(ctx, t.ID)
}

// Update is a full replace of the mutable fields. Status may move to any
// other status; there is no transition rule.
func (s *TicketService) Update(ctx context.Context, id string, in TicketInput) (dto.Ticket, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return dto.Ticket{}, apperr.Validation("title is required")
	}
	t, err := s.tickets.Get(ctx, id)
	if err != nil {
		return dto.Ticket{}, err
	}
	if t == nil {
		return dto.Ticket{}, apperr.NotFound("ticket", id)
	}

	prio, status, typ, err := resolveEnums(in, false)
	if err != nil {
		return dto.Ticket{}, err
	}

	t.Title = in.Title
	t.Description = strings.TrimSpace(in.Description)
	t.Priority = prio
	t.Status = status
	t.Type = typ
	t.TimeEstimate = in.TimeEstimate
	if err := s.tickets.Update(ctx, t); err != nil {
		return dto.Ticket{}, err
	}
	return s.Get(ctx, id)
}

func resolveEnums(in TicketInput, applyDefaults bool) (models.Priority, models.Status, models.TicketType, error) {
	prio := models.Priority(strings.TrimSpace(in.Priority))
	status := models.Status(strings.TrimSpace(in.Status))
	typ := models.TicketType(strings.TrimSpace(in.Type))
	if applyDefaults {
		if prio == "" {
			prio = models.PriorityMedium
		}
		if status == "" {
			status = models.StatusOpen
		}
		if typ == "" {
			typ = models.TypeBug
		}
	}
	if !prio.Valid() {
		return "", "", "", apperr.Validation("invalid priority %q", prio)
	}
	if !status.Valid() {
		return "", "", "", apperr.Validation("invalid status %q", status)
	}
	if !typ.Valid() {
		return "", "", "", apperr.Validation("invalid type %q", typ)
	}
	return prio, status, typ, nil
}

func (s *TicketService) AssignDeveloper(ctx context.Context, ticketID, userID string) error {
	if err := s.resolvePair(ctx, ticketID, userID); err != nil {
		return err
	}
	return s.tickets.Assign(ctx, ticketID, userID)
}

func (s *TicketService) UnassignDeveloper(ctx context.Context, ticketID, userID string) error {
	if err := s.resolvePair(ctx, ticketID, userID); err != nil {
		return err
	}
	return s.tickets.Unassign(ctx, ticketID, userID)
}

func (s *TicketService) resolvePair(ctx context.Context, ticketID, userID string) error {
	t, err := s.tickets.Get(ctx, ticketID)
	if err != nil {
		return err
	}
	if t == nil {
		return apperr.NotFound("ticket", ticketID)
	}
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return apperr.NotFound("user", userID)
	}
	return nil
}

// Delete cascades to the ticket's comments in one transaction.
func (s *TicketService) Delete(ctx context.Context, id string) error {
	t, err := s.tickets.Get(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return apperr.NotFound("ticket", id)
	}
	return s.tickets.Delete(ctx, id)
}

// Summary aggregates ticket counts for the dashboard.
func (s *TicketService) Summary(ctx context.Context) (dto.StatsSummary, error) {
	var out dto.StatsSummary
	var err error
	if out.ByStatus, err = s.tickets.CountBy(ctx, "status"); err != nil {
		return dto.StatsSummary{}, err
	}
	if out.ByPriority, err = s.tickets.CountBy(ctx, "priority"); err != nil {
		return dto.StatsSummary{}, err
	}
	if out.ByType, err = s.tickets.CountBy(ctx, "type"); err != nil {
		return dto.StatsSummary{}, err
	}
	return out, nil
}
