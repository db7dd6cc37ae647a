package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bugtrack/internal/dto"
	"bugtrack/internal/models"
	"bugtrack/internal/repository"
	"bugtrack/internal/utils"
)

// UserHTTP exposes user lookups for member and assignee pickers.
type UserHTTP struct {
	repo repository.UserRepository
}

func NewUserHTTP(r repository.UserRepository) *UserHTTP { return &UserHTTP{repo: r} }

// GET /api/users?q=&limit=&offset=
func (h *UserHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		users, total, err := h.repo.List(r.Context(), qv.Get("q"),
			utils.QueryInt(qv, "limit", 50), utils.QueryInt(qv, "offset", 0))
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		items := make([]dto.User, 0, len(users))
		for i := range users {
			items = append(items, dto.FromUser(&users[i]))
		}
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
	}
}

// GET /api/users/{id}
func (h *UserHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		u, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "user not found")
			return
		}
		utils.JSON(w, http.StatusOK, dto.FromUser(u))
	}
}

// PATCH /api/users/{id}/level — admin only.
func (h *UserHTTP) UpdateLevel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			AuthorityLevel string `json:"authorityLevel"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		switch in.AuthorityLevel {
		case models.LevelUser, models.LevelAdmin:
		default:
			utils.Error(w, http.StatusBadRequest, "invalid authority level")
			return
		}
		u, err := h.repo.UpdateLevel(r.Context(), chi.URLParam(r, "id"), in.AuthorityLevel)
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		if u == nil {
			utils.Error(w, http.StatusNotFound, "user not found")
			return
		}
		utils.JSON(w, http.StatusOK, dto.FromUser(u))
	}
}
