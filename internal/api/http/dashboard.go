package http

import (
	"net/http"

	"github.com/go-chi/render"
)

func (s *Server) dashboardSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.repo.Dashboard().GetSummary(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

func (s *Server) dashboardOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := s.repo.Dashboard().GetOverview(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, overview)
}

func (s *Server) dashboardMonthly(w http.ResponseWriter, r *http.Request) {
	metrics, err := s.repo.Dashboard().GetMonthlyMetrics(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, metrics)
}

func (s *Server) dashboardTopProducts(w http.ResponseWriter, r *http.Request) {
	top, err := s.repo.Dashboard().GetTopProducts(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, top)
}

func (s *Server) dashboardTopCustomers(w http.ResponseWriter, r *http.Request) {
	top, err := s.repo.Dashboard().GetTopCustomers(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, top)
}
