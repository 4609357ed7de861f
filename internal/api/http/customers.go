package http

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/invtrack/inventory-manager/internal/entity"
)

func (s *Server) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.repo.Customers().GetCustomers(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, customers)
}

func (s *Server) listVIPCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := s.repo.Customers().GetVIPCustomers(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, customers)
}

func (s *Server) searchCustomers(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	customers, err := s.repo.Customers().SearchCustomers(r.Context(), term)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, customers)
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	customer, err := s.repo.Customers().GetCustomerById(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, customer)
}

func (s *Server) getCustomerOrders(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	lines, err := s.repo.Customers().GetCustomerOrders(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, lines)
}

func (s *Server) addCustomer(w http.ResponseWriter, r *http.Request) {
	var data entity.AccountInsert
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := data.Validate(); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	customer, err := s.repo.Customers().AddCustomer(r.Context(), &data)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, customer)
}

func (s *Server) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	var data entity.AccountUpdate
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	customer, err := s.repo.Customers().UpdateCustomer(r.Context(), id, &data)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, customer)
}

func (s *Server) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := s.repo.Customers().DeleteCustomerById(r.Context(), id); err != nil {
		renderError(w, r, err)
		return
	}
	render.NoContent(w, r)
}
