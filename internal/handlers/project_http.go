package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bugtrack/internal/middleware"
	"bugtrack/internal/service"
	"bugtrack/internal/utils"
)

type ProjectHTTP struct {
	svc *service.ProjectService
}

func NewProjectHTTP(s *service.ProjectService) *ProjectHTTP { return &ProjectHTTP{svc: s} }

// GET /api/projects
func (h *ProjectHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ps, err := h.svc.List(r.Context())
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, ps)
	}
}

// GET /api/projects/{id}
func (h *ProjectHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, p)
	}
}

// GET /api/projects/user/{userId}
func (h *ProjectHTTP) ListByUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ps, err := h.svc.ListByUser(r.Context(), chi.URLParam(r, "userId"))
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, ps)
	}
}

// POST /api/projects
func (h *ProjectHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		email, _ := utils.GetString(r.Context(), middleware.CtxEmail)
		p, err := h.svc.Create(r.Context(), in.Name, in.Description, email)
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, p)
	}
}

// PUT /api/projects/{id}
func (h *ProjectHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		p, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in.Name, in.Description)
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, p)
	}
}

// POST /api/projects/{projectId}/members/{userId}
func (h *ProjectHTTP) AddMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h.svc.AddTeamMember(r.Context(), chi.URLParam(r, "projectId"), chi.URLParam(r, "userId"))
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// DELETE /api/projects/{projectId}/members/{userId}
func (h *ProjectHTTP) RemoveMember() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h.svc.RemoveTeamMember(r.Context(), chi.URLParam(r, "projectId"), chi.URLParam(r, "userId"))
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// DELETE /api/projects/{id}
func (h *ProjectHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			utils.WriteErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
