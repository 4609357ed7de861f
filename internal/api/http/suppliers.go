package http

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/invtrack/inventory-manager/internal/entity"
)

func (s *Server) listSuppliers(w http.ResponseWriter, r *http.Request) {
	suppliers, err := s.repo.Suppliers().GetSuppliers(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, suppliers)
}

func (s *Server) supplierPerformance(w http.ResponseWriter, r *http.Request) {
	perf, err := s.repo.Suppliers().GetSupplierPerformance(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, perf)
}

func (s *Server) searchSuppliers(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	suppliers, err := s.repo.Suppliers().SearchSuppliers(r.Context(), term)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, suppliers)
}

func (s *Server) getSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	supplier, err := s.repo.Suppliers().GetSupplierById(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, supplier)
}

func (s *Server) addSupplier(w http.ResponseWriter, r *http.Request) {
	var data entity.AccountInsert
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := data.Validate(); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	supplier, err := s.repo.Suppliers().AddSupplier(r.Context(), &data)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, supplier)
}

func (s *Server) updateSupplier(w http.ResponseWriter, r *http.Request) {
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
	supplier, err := s.repo.Suppliers().UpdateSupplier(r.Context(), id, &data)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, supplier)
}

func (s *Server) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := s.repo.Suppliers().DeleteSupplierById(r.Context(), id); err != nil {
		renderError(w, r, err)
		return
	}
	render.NoContent(w, r)
}
