package http

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/invtrack/inventory-manager/internal/entity"
)

func (s *Server) listInventory(w http.ResponseWriter, r *http.Request) {
	items, err := s.repo.Inventory().GetInventory(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, items)
}

func (s *Server) listLowStock(w http.ResponseWriter, r *http.Request) {
	items, err := s.repo.Inventory().GetLowStock(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, items)
}

func (s *Server) getInventoryByProduct(w http.ResponseWriter, r *http.Request) {
	productId, err := idParam(r, "productId")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	item, err := s.repo.Inventory().GetInventoryByProduct(r.Context(), productId)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, item)
}

func (s *Server) setInventoryQuantity(w http.ResponseWriter, r *http.Request) {
	productId, err := idParam(r, "productId")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	var data entity.InventoryUpdate
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := data.Validate(); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	item, err := s.repo.Inventory().SetQuantity(r.Context(), productId, data.Quantity)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, item)
}
