package handlers

import (
	"net/http"

	"bugtrack/internal/service"
	"bugtrack/internal/utils"
)

type StatsHTTP struct {
	svc *service.TicketService
}

func NewStatsHTTP(s *service.TicketService) *StatsHTTP { return &StatsHTTP{svc: s} }

// GET /api/stats/summary
func (h *StatsHTTP) Summary() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sum, err := h.svc.Summary(r.Context())
		if err != nil {
			utils.WriteErr(w, err)
			return
		}
		utils.JSON(w, http.StatusOK, sum)
	}
}
