package http

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/invtrack/inventory-manager/internal/entity"
)

func (s *Server) listOrders(w http.ResponseWriter, r *http.Request) {
	f := &entity.OrderFilter{}
	var err error
	if f.From, err = dateQuery(r, "from"); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if f.To, err = dateQuery(r, "to"); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if f.CustomerId, err = intQuery(r, "customerId"); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if f.SupplierId, err = intQuery(r, "supplierId"); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}

	orders, err := s.repo.Orders().GetOrders(r.Context(), f)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, orders)
}

func (s *Server) orderSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.repo.Orders().GetOrderSummary(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, summary)
}

func (s *Server) orderStatusList(w http.ResponseWriter, r *http.Request) {
	orders, err := s.repo.Orders().GetOrderStatusList(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, orders)
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	order, err := s.repo.Orders().GetOrderById(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, order)
}

func (s *Server) getOrderItems(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	items, err := s.repo.Orders().GetOrderItems(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, items)
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	var data entity.OrderNew
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := data.Validate(); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	order, err := s.repo.Orders().CreateOrder(r.Context(), &data)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, order)
}

func (s *Server) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	var data entity.OrderUpdate
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := data.Validate(); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	order, err := s.repo.Orders().UpdateOrder(r.Context(), id, &data)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, order)
}

func (s *Server) deleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := s.repo.Orders().DeleteOrder(r.Context(), id); err != nil {
		renderError(w, r, err)
		return
	}
	render.NoContent(w, r)
}
