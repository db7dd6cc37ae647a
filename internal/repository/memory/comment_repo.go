package memory

import (
	"context"
	"sort"

	"bugtrack/internal/models"
)

type commentRepo struct{ s *Store }

func (r *commentRepo) hydrate(c *models.Comment) models.Comment {
	out := *c
	out.UserName = r.s.userName(c.UserID)
	return out
}

func (r *commentRepo) Create(ctx context.Context, c *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c.ID = newID()
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt
	cp := models.Comment{
		ID: c.ID, Content: c.Content, TicketID: c.TicketID, UserID: c.UserID,
		CreatedAt: c.CreatedAt, UpdatedAt: c.UpdatedAt,
	}
	r.s.comments[c.ID] = &cp
	return nil
}

func (r *commentRepo) Get(ctx context.Context, id string) (*models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.comments[id]
	if !ok {
		return nil, nil
	}
	out := r.hydrate(c)
	return &out, nil
}

func (r *commentRepo) ListByTicket(ctx context.Context, ticketID string) ([]models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Comment
	for _, c := range r.s.comments {
		if c.TicketID == ticketID {
			out = append(out, r.hydrate(c))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *commentRepo) Update(ctx context.Context, c *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.comments[c.ID]
	if !ok {
		return errNotFound
	}
	cur.Content = c.Content
	cur.UpdatedAt = now()
	return nil
}

func (r *commentRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.comments[id]; !ok {
		return errNotFound
	}
	delete(r.s.comments, id)
	return nil
}

func (r *commentRepo) CountByTicket(ctx context.Context, ticketID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, c := range r.s.comments {
		if c.TicketID == ticketID {
			n++
		}
	}
	return n, nil
}
