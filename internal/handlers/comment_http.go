package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"bugtrack/internal/middleware"
	"bugtrack/internal/service"
	"bugtrack/internal/utils"
)

type CommentHTTP struct {
	svc *service.CommentService
}

func NewCommentHTTP(s *service.CommentService) *CommentHTTP { return &CommentHTTP{svc: s} }

// GET /api/comments/ticket/{ticketId}
func (h *CommentHTTP) ListByTicket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cs, err := h.svc.ListByTicket(r.Context(), chi.URLParam(r, "ticketId"))
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, cs)
	}
}

// GET /api/comments/{id}
func (h *CommentHTTP) Get() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, c)
	}
}

// POST /api/comments
func (h *CommentHTTP) Create() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Content  string `json:"content"`
			TicketID string `json:"ticketId"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		email, _ := utils.GetString(r.Context(), middleware.CtxEmail)
		c, err := h.svc.Create(r.Context(), in.Content, in.TicketID, email)
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		utils.JSON(w, http.StatusCreated, c)
	}
}

// PUT /api/comments/{id}
func (h *CommentHTTP) Update() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			utils.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		c, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), in.Content)
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, c)
	}
}

// DELETE /api/comments/{id}
func (h *CommentHTTP) Delete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.svc.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			utils.WriteErr(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
