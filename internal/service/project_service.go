package service

import (
	"context"
	"strings"

	"bugtrack/internal/apperr"
	"bugtrack/internal/dto"
	"bugtrack/internal/models"
	"bugtrack/internal/repository"
)

type ProjectService struct {
	projects repository.ProjectRepository
	users    repository.UserRepository
}

func NewProjectService(projects repository.ProjectRepository, users repository.UserRepository) *ProjectService {
	return &ProjectService{projects: projects, users: users}
}

func (s *ProjectService) List(ctx context.Context) ([]dto.Project, error) {
	ps, err := s.projects.List(ctx)
	if err != nil {
		return nil, err
	}
	return dto.FromProjects(ps), nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (dto.Project, error) {
	p, err := s.projects.Get(ctx, id)
	if err != nil {
		return dto.Project{}, err
	}
	if p == nil {
		return dto.Project{}, apperr.NotFound("project", id)
	}
	return dto.FromProject(p), nil
}

// ListByUser returns projects where the user is a team member.
func (s *ProjectService) ListByUser(ctx context.Context, userID string) ([]dto.Project, error) {
	ps, err := s.projects.ListByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.FromProjects(ps), nil
}

// Create resolves the creator by email and persists the project; the
// repository adds the creator as the first team member in the same
// transaction as the insert.
func (s *ProjectService) Create(ctx context.Context, name, description, creatorEmail string) (dto.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return dto.Project{}, apperr.Validation("project name is required")
	}
	creator, _, err := s.users.GetByEmail(ctx, creatorEmail)
	if err != nil {
		return dto.Project{}, err
	}
	if creator == nil {
		return dto.Project{}, apperr.NotFound("user", creatorEmail)
	}

	p := &models.Project{
		Name:        name,
		Description: strings.TrimSpace(description),
		CreatedBy:   creator.ID,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return dto.Project{}, err
	}
	return s.Get(ctx, p.ID)
}

// Update replaces name and description; relations are untouched.
func (s *ProjectService) Update(ctx context.Context, id, name, description string) (dto.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return dto.Project{}, apperr.Validation("project name is required")
	}
	p, err := s.projects.Get(ctx, id)
	if err != nil {
		return dto.Project{}, err
	}
	if p == nil {
		return dto.Project{}, apperr.NotFound("project", id)
	}
	p.Name = name
	p.Description = strings.TrimSpace(description)
	if err := s.projects.Update(ctx, p); err != nil {
		return dto.Project{}, err
	}
	return s.Get(ctx, id)
}

func (s *ProjectService) AddTeamMember(ctx context.Context, projectID, userID string) error {
	if err := s.resolvePair(ctx, projectID, userID); err != nil {
		return err
	}
	return s.projects.AddMember(ctx, projectID, userID)
}

func (s *ProjectService) RemoveTeamMember(ctx context.Context, projectID, userID string) error {
	if err := s.resolvePair(ctx, projectID, userID); err != nil {
		return err
	}
	return s.projects.RemoveMember(ctx, projectID, userID)
}

func (s *ProjectService) resolvePair(ctx context.Context, projectID, userID string) error {
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		return err
	}
	if p == nil {
		return apperr.NotFound("project", projectID)
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

// Delete cascades to the project's tickets and their comments; the
// repository runs the ordered deletes in one transaction.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	p, err := s.projects.Get(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return apperr.NotFound("project", id)
	}
	return s.projects.Delete(ctx, id)
}
