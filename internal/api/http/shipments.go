package http

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/invtrack/inventory-manager/internal/entity"
)

func (s *Server) listShipments(w http.ResponseWriter, r *http.Request) {
	shipments, err := s.repo.Shipments().GetShipments(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, shipments)
}

func (s *Server) listLateShipments(w http.ResponseWriter, r *http.Request) {
	late, err := s.repo.Shipments().GetLateShipments(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, late)
}

func (s *Server) getShipment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	shipment, err := s.repo.Shipments().GetShipmentById(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, shipment)
}

func (s *Server) createShipment(w http.ResponseWriter, r *http.Request) {
	var data entity.ShipmentNew
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := data.Validate(); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	shipment, err := s.repo.Shipments().CreateShipment(r.Context(), &data)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, shipment)
}

func (s *Server) updateShipment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	var data entity.ShipmentUpdate
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	shipment, err := s.repo.Shipments().UpdateShipment(r.Context(), id, &data)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, shipment)
}

func (s *Server) deleteShipment(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := s.repo.Shipments().DeleteShipment(r.Context(), id); err != nil {
		renderError(w, r, err)
		return
	}
	render.NoContent(w, r)
}
