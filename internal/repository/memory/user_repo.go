package memory

import (
	"context"
	"sort"
	"strings"

	"bugtrack/internal/models"
)

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, u *models.User, passwordHash string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range r.s.users {
		if rec.user.Email == u.Email {
			return errDuplicate
		}
	}
	u.ID = newID()
	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	r.s.users[u.ID] = &userRec{user: cp, hash: passwordHash}
	return nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rec := range r.s.users {
		if rec.user.Email == email {
			u := rec.user
			return &u, rec.hash, nil
		}
	}
	return nil, "", nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	u := rec.user
	return &u, nil
}

func (r *userRepo) UpdateLevel(ctx context.Context, id, level string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	rec.user.AuthorityLevel = level
	rec.user.UpdatedAt = now()
	u := rec.user
	return &u, nil
}

func (r *userRepo) List(ctx context.Context, q string, limit, offset int) ([]models.User, int, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	needle := strings.ToLower(strings.TrimSpace(q))
	var all []models.User
	for _, rec := range r.s.users {
		u := rec.user
		if needle != "" &&
			!strings.Contains(strings.ToLower(u.Email), needle) &&
			!strings.Contains(strings.ToLower(u.FirstName), needle) &&
			!strings.Contains(strings.ToLower(u.LastName), needle) {
			continue
		}
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.Before(all[j].CreatedAt)
		}
		return all[i].ID < all[j].ID
	})
	total := len(all)
	if offset >= len(all) {
		return nil, total, nil
	}
	all = all[offset:]
	if len(all) > limit {
		all = all[:limit]
	}
	return all, total, nil
}
