package memory

import (
	"context"
	"sort"

	"bugtrack/internal/models"
)

type projectRepo struct{ s *Store }

// hydrate fills the query-derived fields. Callers hold at least a read lock.
func (r *projectRepo) hydrate(p *models.Project) models.Project {
	out := *p
	out.CreatedByName = r.s.userName(p.CreatedBy)
	out.MemberIDs = idsOf(r.s.members[p.ID])
	out.TicketCount = 0
	for _, t := range r.s.tickets {
		if t.ProjectID == p.ID {
			out.TicketCount++
		}
	}
	return out
}

func (r *projectRepo) Create(ctx context.Context, p *models.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p.ID = newID()
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt
	cp := models.Project{
		ID: p.ID, Name: p.Name, Description: p.Description,
		CreatedBy: p.CreatedBy, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
	r.s.projects[p.ID] = &cp
	if p.CreatedBy != "" {
		r.s.members[p.ID] = map[string]struct{}{p.CreatedBy: {}}
	}
	return nil
}

func (r *projectRepo) Get(ctx context.Context, id string) (*models.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.projects[id]
	if !ok {
		return nil, nil
	}
	out := r.hydrate(p)
	return &out, nil
}

func (r *projectRepo) List(ctx context.Context) ([]models.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Project
	for _, p := range r.s.projects {
		out = append(out, r.hydrate(p))
	}
	sortProjects(out)
	return out, nil
}

func (r *projectRepo) ListByMember(ctx context.Context, userID string) ([]models.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []models.Project
	for _, p := range r.s.projects {
		if _, ok := r.s.members[p.ID][userID]; ok {
			out = append(out, r.hydrate(p))
		}
	}
	sortProjects(out)
	return out, nil
}

func (r *projectRepo) Update(ctx context.Context, p *models.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.projects[p.ID]
	if !ok {
		return errNotFound
	}
	cur.Name = p.Name
	cur.Description = p.Description
	cur.UpdatedAt = now()
	return nil
}

// Delete mirrors the postgres cascade order: comments, assignment rows,
// tickets, membership rows, project.
func (r *projectRepo) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.projects[id]; !ok {
		return errNotFound
	}
	for tid, t := range r.s.tickets {
		if t.ProjectID != id {
			continue
		}
		for cid, c := range r.s.comments {
			if c.TicketID == tid {
				delete(r.s.comments, cid)
			}
		}
		delete(r.s.assignees, tid)
		delete(r.s.tickets, tid)
	}
	delete(r.s.members, id)
	delete(r.s.projects, id)
	return nil
}

func (r *projectRepo) AddMember(ctx context.Context, projectID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	set, ok := r.s.members[projectID]
	if !ok {
		set = map[string]struct{}{}
		r.s.members[projectID] = set
	}
	set[userID] = struct{}{}
	return nil
}

func (r *projectRepo) RemoveMember(ctx context.Context, projectID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.members[projectID], userID)
	return nil
}

func sortProjects(ps []models.Project) {
	sort.Slice(ps, func(i, j int) bool {
		if !ps[i].CreatedAt.Equal(ps[j].CreatedAt) {
			return ps[i].CreatedAt.Before(ps[j].CreatedAt)
		}
		return ps[i].ID < ps[j].ID
	})
}
