package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/render"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AuthToken string `json:"authToken"`
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var data loginRequest
	if err := render.DecodeJSON(r.Body, &data); err != nil {
		render.Render(w, r, ErrInvalidRequest(err))
		return
	}
	if data.Username == "" || data.Password == "" {
		render.Render(w, r, ErrInvalidRequest(fmt.Errorf("username and password are required")))
		return
	}

	token, err := s.auth.Login(r.Context(), data.Username, data.Password)
	if err != nil {
		renderError(w, r, err)
		return
	}
	render.JSON(w, r, loginResponse{AuthToken: token})
}
