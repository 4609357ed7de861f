package http

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/invtrack/inventory-manager/internal/entity"
)

func (s *Server) listPayments(w http.ResponseWriter, r *http.Request) {
	f := &entity.PaymentFilter{}
	var err error
	if f.From, err = dateQuery(r, "from"); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if f.To, err = dateQuery(r, "to"); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	payments, err := s.repo.Payments().GetPayments(r.Context(), f)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, payments)
}

func (s *Server) paymentAnalysis(w http.ResponseWriter, r *http.Request) {
	buckets, err := s.repo.Payments().GetPaymentAnalysis(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, buckets)
}

func (s *Server) getPayment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	payment, err := s.repo.Payments().GetPaymentById(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, payment)
}

func (s *Server) addPayment(w http.ResponseWriter, r *http.Request) {
	var data entity.PaymentInsert
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := data.Validate(); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	payment, err := s.repo.Payments().AddPayment(r.Context(), &data)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, payment)
}
