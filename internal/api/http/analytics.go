package http

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/invtrack/inventory-manager/internal/entity"
)

func (s *Server) salesByPeriod(w http.ResponseWriter, r *http.Request) {
	f := &entity.SalesFilter{}
	var err error
	if f.From, err = dateQuery(r, "from"); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if f.To, err = dateQuery(r, "to"); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	periods, err := s.repo.Analytics().GetSalesByPeriod(r.Context(), f)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, periods)
}

func (s *Server) productRollup(w http.ResponseWriter, r *http.Request) {
	rollup, err := s.repo.Analytics().GetProductRollup(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, rollup)
}

func (s *Server) customerRollup(w http.ResponseWriter, r *http.Request) {
	rollup, err := s.repo.Analytics().GetCustomerRollup(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, rollup)
}

func (s *Server) supplierRollup(w http.ResponseWriter, r *http.Request) {
	rollup, err := s.repo.Analytics().GetSupplierRollup(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, rollup)
}

func (s *Server) monthlyTrend(w http.ResponseWriter, r *http.Request) {
	trend, err := s.repo.Analytics().GetMonthlyTrend(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, trend)
}
