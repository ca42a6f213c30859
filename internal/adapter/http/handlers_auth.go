package adapthttp

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"weighttracker/internal/app"
)

type authReply struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username        string  `json:"username"`
		Password        string  `json:"password"`
		ConfirmPassword *string `json:"confirmPassword"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	if body.ConfirmPassword != nil {
		switch {
		case strings.TrimSpace(body.Username) == "" || strings.TrimSpace(body.Password) == "" || strings.TrimSpace(*body.ConfirmPassword) == "":
			writeJSON(w, http.StatusBadRequest, authReply{Message: "Please complete all fields"})
			return
		case body.Password != *body.ConfirmPassword:
			writeJSON(w, http.StatusBadRequest, authReply{Message: "Passwords do not match"})
			return
		}
	}

	err := s.creds.CreateAccount(r.Context(), body.Username, body.Password)
	switch {
	case errors.Is(err, app.ErrBlankInput):
		writeJSON(w, http.StatusBadRequest, authReply{Message: "Please enter a username and password"})
	case errors.Is(err, app.ErrUsernameTaken):
		writeJSON(w, http.StatusConflict, authReply{Message: "That username is already in use. Please choose another one."})
	case err != nil:
		log.Error().Err(err).Msg("create account")
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
	default:
		writeJSON(w, http.StatusCreated, authReply{OK: true, Message: "Account created! You can log in now."})
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if strings.TrimSpace(body.Username) == "" || strings.TrimSpace(body.Password) == "" {
		writeJSON(w, http.StatusBadRequest, authReply{Message: "Please enter username and password"})
		return
	}

	ok, err := s.creds.ValidateLogin(r.Context(), body.Username, body.Password)
	if err != nil {
		log.Error().Err(err).Msg("validate login")
		writeError(w, http.StatusInternalServerError, errors.New("internal error"))
		return
	}
	if !ok {
		writeJSON(w, http.StatusUnauthorized, authReply{Message: "Invalid username or password"})
		return
	}
	writeJSON(w, http.StatusOK, authReply{OK: true, Message: "Welcome, " + body.Username + "!"})
}
