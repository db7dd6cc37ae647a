package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"bugtrack/internal/config"
	"bugtrack/internal/models"
	"bugtrack/internal/repository/memory"
	"bugtrack/internal/router"
	"bugtrack/internal/utils"
)

func newServer(t *testing.T) (*httptest.Server, *memory.Store, config.Config) {
	t.Helper()
	cfg := config.Config{
		Env:       "test",
		Origin:    "http://localhost:3000",
		JWTSecret: "router-test-secret",
		TokenTTL:  time.Hour,
	}
	s := memory.NewStore()
	h := router.NewWith(zerolog.Nop(), cfg, s.Users(), s.Projects(), s.Tickets(), s.Comments())
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv, s, cfg
}

// call issues a JSON request and decodes the body into a generic map.
func call(t *testing.T, srv *httptest.Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, srv.URL+path, rd)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return resp.StatusCode, out
}

func register(t *testing.T, srv *httptest.Server, email, first, last string) (token, id string) {
	t.Helper()
	code, body := call(t, srv, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": email, "password": "hunter22", "firstName": first, "lastName": last,
	})
	if code != http.StatusCreated {
		t.Fatalf("register %s: status %d body %v", email, code, body)
	}
	return body["token"].(string), body["id"].(string)
}

func TestAPI_RequiresAuth(t *testing.T) {
	srv, _, _ := newServer(t)
	for _, path := range []string{"/api/projects", "/api/tickets", "/api/users", "/api/auth/me"} {
		code, _ := call(t, srv, http.MethodGet, path, "", nil)
		if code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: status %d, want 401", path, code)
		}
	}
	if code, _ := call(t, srv, http.MethodGet, "/healthz", "", nil); code != http.StatusOK {
		t.Errorf("healthz: status %d, want 200", code)
	}
}

func TestAPI_ProjectTicketCommentLifecycle(t *testing.T) {
	srv, _, _ := newServer(t)
	aliceTok, aliceID := register(t, srv, "alice@x.com", "Alice", "Smith")
	_, bobID := register(t, srv, "bob@x.com", "Bob", "Jones")

	// Project creation binds the authenticated user as creator and first member.
	code, proj := call(t, srv, http.MethodPost, "/api/projects", aliceTok,
		map[string]string{"name": "Alpha", "description": "first release"})
	if code != http.StatusCreated {
		t.Fatalf("create project: status %d body %v", code, proj)
	}
	projID := proj["id"].(string)
	members := proj["teamMemberIds"].([]any)
	if len(members) != 1 || members[0] != aliceID {
		t.Errorf("team members: %v, want [%s]", members, aliceID)
	}
	if proj["ticketCount"].(float64) != 0 {
		t.Errorf("ticket count: %v, want 0", proj["ticketCount"])
	}

	code, _ = call(t, srv, http.MethodPost, "/api/projects/"+projID+"/members/"+bobID, aliceTok, nil)
	if code != http.StatusOK {
		t.Fatalf("add member: status %d", code)
	}

	// Ticket gets MEDIUM/OPEN/BUG when the fields are absent.
	code, tk := call(t, srv, http.MethodPost, "/api/tickets", aliceTok,
		map[string]string{"title": "Crash on load", "projectId": projID})
	if code != http.StatusCreated {
		t.Fatalf("create ticket: status %d body %v", code, tk)
	}
	tkID := tk["id"].(string)
	if tk["priority"] != "MEDIUM" || tk["status"] != "OPEN" || tk["type"] != "BUG" {
		t.Errorf("ticket defaults: %v/%v/%v", tk["priority"], tk["status"], tk["type"])
	}

	code, _ = call(t, srv, http.MethodPost, "/api/tickets/"+tkID+"/assign/"+bobID, aliceTok, nil)
	if code != http.StatusOK {
		t.Fatalf("assign: status %d", code)
	}
	code, tk = call(t, srv, http.MethodGet, "/api/tickets/"+tkID, aliceTok, nil)
	if code != http.StatusOK {
		t.Fatalf("get ticket: status %d", code)
	}
	assignees := tk["assignedDeveloperIds"].([]any)
	if len(assignees) != 1 || assignees[0] != bobID {
		t.Errorf("assignees: %v, want [%s]", assignees, bobID)
	}

	code, cm := call(t, srv, http.MethodPost, "/api/comments", aliceTok,
		map[string]string{"content": "Reproduced on staging", "ticketId": tkID})
	if code != http.StatusCreated {
		t.Fatalf("create comment: status %d body %v", code, cm)
	}
	cmID := cm["id"].(string)
	if cm["userName"] != "Alice Smith" {
		t.Errorf("comment author: %v", cm["userName"])
	}

	code, tk = call(t, srv, http.MethodGet, "/api/tickets/"+tkID, aliceTok, nil)
	if code != http.StatusOK || tk["commentCount"].(float64) != 1 {
		t.Errorf("comment count: status %d count %v", code, tk["commentCount"])
	}
	code, proj = call(t, srv, http.MethodGet, "/api/projects/"+projID, aliceTok, nil)
	if code != http.StatusOK || proj["ticketCount"].(float64) != 1 {
		t.Errorf("project ticket count: status %d count %v", code, proj["ticketCount"])
	}

	// Deleting the project removes its tickets and their comments.
	code, _ = call(t, srv, http.MethodDelete, "/api/projects/"+projID, aliceTok, nil)
	if code != http.StatusNoContent {
		t.Fatalf("delete project: status %d", code)
	}
	for _, path := range []string{
		"/api/projects/" + projID,
		"/api/tickets/" + tkID,
		"/api/comments/" + cmID,
	} {
		if code, _ := call(t, srv, http.MethodGet, path, aliceTok, nil); code != http.StatusNotFound {
			t.Errorf("GET %s after cascade: status %d, want 404", path, code)
		}
	}
}

func TestAPI_ErrorStatuses(t *testing.T) {
	srv, _, _ := newServer(t)
	aliceTok, _ := register(t, srv, "alice@x.com", "Alice", "Smith")

	code, _ := call(t, srv, http.MethodPost, "/api/auth/register", "",
		map[string]string{"email": "alice@x.com", "password": "hunter22"})
	if code != http.StatusConflict {
		t.Errorf("duplicate register: status %d, want 409", code)
	}

	code, _ = call(t, srv, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "alice@x.com", "password": "wrong"})
	if code != http.StatusUnauthorized {
		t.Errorf("bad login: status %d, want 401", code)
	}

	code, _ = call(t, srv, http.MethodPost, "/api/projects", aliceTok,
		map[string]string{"name": "   "})
	if code != http.StatusBadRequest {
		t.Errorf("blank project name: status %d, want 400", code)
	}

	code, _ = call(t, srv, http.MethodGet, "/api/projects/missing", aliceTok, nil)
	if code != http.StatusNotFound {
		t.Errorf("missing project: status %d, want 404", code)
	}
}

func TestAPI_LevelChangeIsAdminOnly(t *testing.T) {
	srv, store, _ := newServer(t)
	aliceTok, _ := register(t, srv, "alice@x.com", "Alice", "Smith")
	_, bobID := register(t, srv, "bob@x.com", "Bob", "Jones")

	code, _ := call(t, srv, http.MethodPatch, "/api/users/"+bobID+"/level", aliceTok,
		map[string]string{"authorityLevel": models.LevelAdmin})
	if code != http.StatusForbidden {
		t.Fatalf("non-admin level change: status %d, want 403", code)
	}

	hash, err := utils.HashPassword("root-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	admin := &models.User{Email: "root@x.com", FirstName: "Root", AuthorityLevel: models.LevelAdmin}
	if err := store.Users().Create(context.Background(), admin, hash); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	code, login := call(t, srv, http.MethodPost, "/api/auth/login", "",
		map[string]string{"email": "root@x.com", "password": "root-pass"})
	if code != http.StatusOK {
		t.Fatalf("admin login: status %d body %v", code, login)
	}
	adminTok := login["token"].(string)

	code, body := call(t, srv, http.MethodPatch, "/api/users/"+bobID+"/level", adminTok,
		map[string]string{"authorityLevel": models.LevelAdmin})
	if code != http.StatusOK {
		t.Fatalf("admin level change: status %d body %v", code, body)
	}
	if body["authorityLevel"] != models.LevelAdmin {
		t.Errorf("level after change: %v", body["authorityLevel"])
	}

	code, _ = call(t, srv, http.MethodPatch, "/api/users/"+bobID+"/level", adminTok,
		map[string]string{"authorityLevel": "ROOT"})
	if code != http.StatusBadRequest {
		t.Errorf("unknown level: status %d, want 400", code)
	}
}
