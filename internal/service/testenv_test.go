package service_test

import (
	"context"
	"testing"
	"time"

	"bugtrack/internal/dto"
	"bugtrack/internal/models"
	"bugtrack/internal/repository/memory"
	"bugtrack/internal/service"
)

const testSecret = "test-secret-for-unit-tests-only"

type env struct {
	store    *memory.Store
	auth     *service.AuthService
	projects *service.ProjectService
	tickets  *service.TicketService
	comments *service.CommentService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	s := memory.NewStore()
	return &env{
		store:    s,
		auth:     service.NewAuthService(s.Users(), testSecret, time.Hour),
		projects: service.NewProjectService(s.Projects(), s.Users()),
		tickets:  service.NewTicketService(s.Tickets(), s.Projects(), s.Users()),
		comments: service.NewCommentService(s.Comments(), s.Tickets(), s.Users()),
	}
}

// seedUser creates a user directly through the repository, skipping the
// bcrypt work that Register would do.
func (e *env) seedUser(t *testing.T, email, first, last string) *models.User {
	t.Helper()
	u := &models.User{Email: email, FirstName: first, LastName: last, AuthorityLevel: models.LevelUser}
	if err := e.store.Users().Create(context.Background(), u, "not-a-real-hash"); err != nil {
		t.Fatalf("seed user %s: %v", email, err)
	}
	return u
}

func (e *env) seedProject(t *testing.T, name, creatorEmail string) dto.Project {
	t.Helper()
	p, err := e.projects.Create(context.Background(), name, "", creatorEmail)
	if err != nil {
		t.Fatalf("seed project %s: %v", name, err)
	}
	return p
}

func (e *env) seedTicket(t *testing.T, title, projectID, creatorEmail string) dto.Ticket {
	t.Helper()
	tk, err := e.tickets.Create(context.Background(),
		service.TicketInput{Title: title, ProjectID: projectID}, creatorEmail)
	if err != nil {
		t.Fatalf("seed ticket %s: %v", title, err)
	}
	return tk
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
