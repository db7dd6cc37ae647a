package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"bugtrack/internal/middleware"
	"bugtrack/internal/repository"
	"bugtrack/internal/service"
	"bugtrack/internal/utils"
)

type TicketHTTP struct {
	svc *service.TicketService
}

func NewTicketHTTP(s *service.TicketService) *TicketHTTP { return &TicketHTTP{svc: s} }

type ticketInDTO struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ProjectID    string `json:"projectId"`
	Priority     string `json:"priority"`
	Status       string `json:"status"`
	Type         string `json:"type"`
	TimeEstimate *int   `json:"timeEstimate"`
}

func (in ticketInDTO) input() service.TicketInput {
	return service.TicketInput{
		Title:        in.Title,
		Description:  in.Description,
		ProjectID:    in.ProjectID,
		Priority:     in.Priority,
		Status:       in.Status,
		Type:         in.Type,
		TimeEstimate: in.TimeEstimate,
	}
}

// GET /api/tickets?q=&status=&priority=&type=&limit=&offset=&sort=&order=
func (h *TicketHTTP) List() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		qv := r.URL.Query()
		f := repository.TicketFilter{
			Q:        strings.TrimSpace(qv.Get("q")),
			Status:   strings.TrimSpace(qv.Get("status")),
			Priority: strings.TrimSpace(qv.Get("priority")),
			Type:     strings.TrimSpace(qv.Get("type")),
			Limit:    utils.QueryInt(qv, "limit", 50),
			Offset:   utils.QueryInt(qv, "offset", 0),
			Sort:     qv.Get("sort"),
			Order:    qv.Get("order"),
		}
		items, total, err := h.svc.List(r.Context(), f)
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		w.Header().Set("X-Total-Count", strconv.Itoa(total))
		utils.JSON(w, http.StatusOK, map[string]any{"items": items, "total": total})
	}
}

// GET /api/tickets/{id}
func (h *TicketHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		t, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// GET /api/tickets/project/{projectId}
func (h *TicketHTTP) ListByProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts, err := h.svc.ListByProject(r.Context(), chi.URLParam(r, "projectId"))
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, ts)
	}
}

// GET /api/tickets/user/{userId} — tickets assigned to the user.
func (h *TicketHTTP) ListByUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ts, err := h.svc.ListByUser(r.Context(), chi.URLParam(r, "userId"))
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, ts)
	}
}

// POST /api/tickets
func (h *TicketHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in ticketInDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		email, _ := utils.GetString(r.Context(), middleware.CtxEmail)
		t, err := h.svc.Create(r.Context(), in.input(), email)
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, t)
	}
}

// PUT /api/tickets/{id}
func (h *TicketHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in ticketInDTO
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		t, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in.input())
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, t)
	}
}

// POST /api/tickets/{ticketId}/assign/{userId}
func (h *TicketHTTP) Assign() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h.svc.AssignDeveloper(r.Context(), chi.URLParam(r, "ticketId"), chi.URLParam(r, "userId"))
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		w.WriteHeader(http.StatusOK)
	}
}

// DELETE /api/tickets/{ticketId}/assign/{userId}
func (h *TicketHTTP) Unassign() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h.svc.UnassignDeveloper(r.Context(), chi.URLParam(r, "ticketId"), chi.URLParam(r, "userId"))
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// DELETE /api/tickets/{id}
func (h *TicketHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			utils.WriteErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
