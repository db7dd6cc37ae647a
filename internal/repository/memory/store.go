// Package memory implements the repository interfaces on in-process maps.
// It backs the service and handler tests; semantics mirror the postgres
// implementation, including derived fields and ordered cascade deletes.
package memory

import (
	"errors"
	"sort"
	"sync"
	"time"

	"bugtrack/internal/models"
	"bugtrack/internal/repository"

	"github.com/google/uuid"
)

var (
	errNotFound  = errors.New("no rows")
	errDuplicate = errors.New("duplicate key")
)

type userRec struct {
	user models.User
	hash string
}

type Store struct {
	mu        sync.RWMutex
	users     map[string]*userRec
	projects  map[string]*models.Project
	tickets   map[string]*models.Ticket
	comments  map[string]*models.Comment
	members   map[string]map[string]struct{} // project id -> user ids
	assignees map[string]map[string]struct{} // ticket id -> user ids
}

func NewStore() *Store {
	return &Store{
		users:     map[string]*userRec{},
		projects:  map[string]*models.Project{},
		tickets:   map[string]*models.Ticket{},
		comments:  map[string]*models.Comment{},
		members:   map[string]map[string]struct{}{},
		assignees: map[string]map[string]struct{}{},
	}
}

func (s *Store) Users() repository.UserRepository       { return &userRepo{s} }
func (s *Store) Projects() repository.ProjectRepository { return &projectRepo{s} }
func (s *Store) Tickets() repository.TicketRepository   { return &ticketRepo{s} }
func (s *Store) Comments() repository.CommentRepository { return &commentRepo{s} }

func (s *Store) userName(id string) string {
	if r, ok := s.users[id]; ok {
		return r.user.FullName()
	}
	return ""
}

func idsOf(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func now() time.Time { return time.Now().UTC() }

func newID() string { return uuid.NewString() }
