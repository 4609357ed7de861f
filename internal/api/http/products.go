package http

import (
	"net/http"

	"github.com/go-chi/render"
	"github.com/invtrack/inventory-manager/internal/entity"
)

func (s *Server) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.repo.Products().GetProducts(r.Context())
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, products)
}

func (s *Server) searchProducts(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	products, err := s.repo.Products().SearchProducts(r.Context(), term)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, products)
}

func (s *Server) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	product, err := s.repo.Products().GetProductById(r.Context(), id)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, product)
}

func (s *Server) addProduct(w http.ResponseWriter, r *http.Request) {
	var data entity.ProductInsert
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := data.Validate(); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	product, err := s.repo.Products().AddProduct(r.Context(), &data)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.Status(r, http.StatusCreated)
	render.JSON(w, r, product)
}

func (s *Server) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	var data entity.ProductUpdate
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := data.Validate(); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	product, err := s.repo.Products().UpdateProduct(r.Context(), id, &data)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, product)
}

func (s *Server) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r, "id")
	if err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if err := s.repo.Products().DeleteProductById(r.Context(), id); err != nil {
		renderError(w, r, err)
		return
	}
	render.NoContent(w, r)
}
