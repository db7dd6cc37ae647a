package memory

import (
	"context"
	"sort"
	"strings"

	"bugtrack/internal/models"
	"bugtrack/internal/repository"
)

type ticketRepo struct{ s *Store }

func (r *ticketRepo) hydrate(t *models.Ticket) models.Ticket {
	out := *t
	if p, ok := r.s.projects[t.ProjectID]; ok {
		out.ProjectName = p.Name
	}
	out.CreatedByName = r.s.userName(t.CreatedBy)
	out.AssigneeIDs = idsOf(r.s.assignees[t.ID])
	out.CommentCount = 0
	for _, c := range r.s.comments {
		if c.TicketID == t.ID {
			out.CommentCount++
		}
	}
	return out
}

func (r *ticketRepo) Create(ctx context.Context, t *models.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = newID()
	t.CreatedAt = now()
	t.UpdatedAt = t.CreatedAt
	cp := models.Ticket{
		ID: t.ID, Title: t.Title, Description: t.Description,
		ProjectID: t.ProjectID, CreatedBy: t.CreatedBy,
		Priority: t.Priority, Status: t.Status, Type: t.Type,
		TimeEstimate: t.TimeEstimate,
		CreatedAt:    t.CreatedAt, UpdatedAt: t.UpdatedAt,
	}
	r.s.tickets[t.ID] = &cp
	return nil
}

func (r *ticketRepo) Get(ctx context.Context, id string) (*models.Ticket, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tickets[id]
	if !ok {
		return nil, nil
	}
	out := r.hydrate(t)
	return &out, nil
}

func matches(t *models.Ticket, f repository.TicketFilter, assigned map[string]struct{}) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Q)); q != "" {
		if !strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			return false
		}
	}
	if f.Status != "" && string(t.Status) != f.Status {
		return false
	}
	if f.Priority != "" && string(t.Priority) != f.Priority {
		return false
	}
	if f.Type != "" && string(t.Type) != f.Type {
		return false
	}
	if f.ProjectID != "" && t.ProjectID != f.ProjectID {
		return false
	}
	if f.CreatedBy != "" && t.CreatedBy != f.CreatedBy {
		return false
	}
	if f.AssigneeID != "" {
		if _, ok := assigned[f.AssigneeID]; !ok {
			return false
		}
	}
	return true
}

func (r *ticketRepo) List(ctx context.Context, f repository.TicketFilter) ([]models.Ticket, error) {
	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Ticket
	for _, t := range r.s.tickets {
		if matches(t, f, r.s.assignees[t.ID]) {
			out = append(out, r.hydrate(t))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *ticketRepo) Count(ctx context.Context, f repository.TicketFilter) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, t := range r.s.tickets {
		if matches(t, f, r.s.assignees[t.ID]) {
			n++
		}
	}
	return n, nil
}

func (r *ticketRepo) Update(ctx context.Context, t *models.Ticket) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.tickets[t.ID]
	if !ok {
		return errNotFound
	}
	cur.Title = t.Title
	cur.Description = t.Description
	cur.Priority = t.Priority
	cur.Status = t.Status
	cur.Type = t.Type
	cur.TimeEstimate = t.TimeEstimate
	cur.UpdatedAt = now()
	return nil
}

func (r *ticketRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tickets[id]; !ok {
		return errNotFound
	}
	for cid, c := range r.s.comments {
		if c.TicketID == id {
			delete(r.s.comments, cid)
		}
	}
	delete(r.s.assignees, id)
	delete(r.s.tickets, id)
	return nil
}

func (r *ticketRepo) Assign(ctx context.Context, ticketID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	set, ok := r.s.assignees[ticketID]
	if !ok {
		set = map[string]struct{}{}
		r.s.assignees[ticketID] = set
	}
	set[userID] = struct{}{}
	return nil
}

func (r *ticketRepo) Unassign(ctx context.Context, ticketID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.assignees[ticketID], userID)
	return nil
}

func (r *ticketRepo) CountByProject(ctx context.Context, projectID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, t := range r.s.tickets {
		if t.ProjectID == projectID {
			n++
		}
	}
	return n, nil
}

func (r *ticketRepo) CountBy(ctx context.Context, field string) (map[string]int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := map[string]int{}
	for _, t := range r.s.tickets {
		switch field {
		case "status":
			out[string(t.Status)]++
		case "priority":
			out[string(t.Priority)]++
		case "type":
			out[string(t.Type)]++
		default:
			return nil, errNotFound
		}
	}
	return out, nil
}
