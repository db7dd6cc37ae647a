package service_test

import (
	"context"
	"errors"
	"testing"

	"bugtrack/internal/apperr"
)

func TestProjectCreate_CreatorBecomesSoleMember(t *testing.T) {
	e := newEnv(t)
	alice := e.seedUser(t, "alice@x.com", "Alice", "Smith")

	p := e.seedProject(t, "Alpha", "alice@x.com")
	if p.CreatedByID != alice.ID {
		t.Errorf("creator id: got %q, want %q", p.CreatedByID, alice.ID)
	}
	if len(p.TeamMemberIDs) != 1 || p.TeamMemberIDs[0] != alice.ID {
		t.Errorf("team members: got %v, want [%s]", p.TeamMemberIDs, alice.ID)
	}
	if p.TicketCount != 0 {
		t.Errorf("ticket count: got %d, want 0", p.TicketCount)
	}

	// The membership is visible from the user side too.
	byUser, err := e.projects.ListByUser(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(byUser) != 1 || byUser[0].ID != p.ID {
		t.Errorf("projects by user: got %v", byUser)
	}
}

func TestProjectCreate_UnknownCreator(t *testing.T) {
	e := newEnv(t)
	_, err := e.projects.Create(context.Background(), "Alpha", "", "ghost@x.com")
	var nf *apperr.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestProjectMembership_SymmetricAddRemove(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.seedUser(t, "alice@x.com", "Alice", "Smith")
	bob := e.seedUser(t, "bob@x.com", "Bob", "Jones")
	p := e.seedProject(t, "Alpha", "alice@x.com")

	if err := e.projects.AddTeamMember(ctx, p.ID, bob.ID); err != nil {
		t.Fatalf("AddTeamMember: %v", err)
	}
	// Adding twice is idempotent.
	if err := e.projects.AddTeamMember(ctx, p.ID, bob.ID); err != nil {
		t.Fatalf("AddTeamMember again: %v", err)
	}

	got, err := e.projects.Get(ctx, p.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.TeamMemberIDs) != 2 || !contains(got.TeamMemberIDs, bob.ID) {
		t.Errorf("after add: members %v", got.TeamMemberIDs)
	}
	byBob, _ := e.projects.ListByUser(ctx, bob.ID)
	if len(byBob) != 1 {
		t.Errorf("bob's projects after add: %v", byBob)
	}

	if err := e.projects.RemoveTeamMember(ctx, p.ID, bob.ID); err != nil {
		t.Fatalf("RemoveTeamMember: %v", err)
	}
	got, _ = e.projects.Get(ctx, p.ID)
	if contains(got.TeamMemberIDs, bob.ID) {
		t.Errorf("after remove: members %v still contain bob", got.TeamMemberIDs)
	}
	byBob, _ = e.projects.ListByUser(ctx, bob.ID)
	if len(byBob) != 0 {
		t.Errorf("bob's projects after remove: %v", byBob)
	}
}

func TestProjectMembership_UnresolvedIDs(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	alice := e.seedUser(t, "alice@x.com", "Alice", "Smith")
	p := e.seedProject(t, "Alpha", "alice@x.com")

	var nf *apperr.NotFoundError
	if err := e.projects.AddTeamMember(ctx, "missing-project", alice.ID); !errors.As(err, &nf) {
		t.Errorf("missing project: expected NotFoundError, got %v", err)
	}
	if err := e.projects.AddTeamMember(ctx, p.ID, "missing-user"); !errors.As(err, &nf) {
		t.Errorf("missing user: expected NotFoundError, got %v", err)
	}
}

func TestProjectUpdate_ReplacesFieldsOnly(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.seedUser(t, "alice@x.com", "Alice", "Smith")
	p := e.seedProject(t, "Alpha", "alice@x.com")

	got, err := e.projects.Update(ctx, p.ID, "Alpha v2", "renamed")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Name != "Alpha v2" || got.Description != "renamed" {
		t.Errorf("updated project: %+v", got)
	}
	if len(got.TeamMemberIDs) != 1 {
		t.Errorf("relations touched by update: members %v", got.TeamMemberIDs)
	}

	var vd *apperr.ValidationError
	if _, err := e.projects.Update(ctx, p.ID, "  ", ""); !errors.As(err, &vd) {
		t.Errorf("blank name: expected ValidationError, got %v", err)
	}
}

func TestProjectDelete_CascadesTicketsAndComments(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.seedUser(t, "alice@x.com", "Alice", "Smith")
	p := e.seedProject(t, "Alpha", "alice@x.com")
	tk := e.seedTicket(t, "Crash on load", p.ID, "alice@x.com")
	c, err := e.comments.Create(ctx, "Reproduced", tk.ID, "alice@x.com")
	if err != nil {
		t.Fatalf("comment Create: %v", err)
	}

	if err := e.projects.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var nf *apperr.NotFoundError
	if _, err := e.projects.Get(ctx, p.ID); !errors.As(err, &nf) {
		t.Errorf("project survived delete: %v", err)
	}
	if _, err := e.tickets.Get(ctx, tk.ID); !errors.As(err, &nf) {
		t.Errorf("ticket survived project delete: %v", err)
	}
	if _, err := e.comments.Get(ctx, c.ID); !errors.As(err, &nf) {
		t.Errorf("comment survived project delete: %v", err)
	}
}

func TestProjectDelete_Unknown(t *testing.T) {
	e := newEnv(t)
	var nf *apperr.NotFoundError
	if err := e.projects.Delete(context.Background(), "nope"); !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}
