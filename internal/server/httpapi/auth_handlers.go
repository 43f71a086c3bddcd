package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/tasktracker/internal/api"
	"github.com/dmitrijs2005/tasktracker/internal/server/auth"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
)

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.users.Register(r.Context(), services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
	})
	if err != nil {
		h.serviceError(w, r, "register", err, 0, "")
		return
	}
	writeJSON(w, http.StatusCreated, toAuthResponse(res))
}

// login issues tokens for a known email. A password, if sent, is ignored.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.users.Login(r.Context(), req.Email)
	if err != nil {
		h.serviceError(w, r, "login", err, http.StatusUnauthorized, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, toAuthResponse(res))
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	var req api.RefreshRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	access, err := h.users.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.serviceError(w, r, "refresh", err, http.StatusUnauthorized, msgInvalidToken)
		return
	}
	writeJSON(w, http.StatusOK, api.RefreshResponse{AccessToken: access})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	p, ok := auth.PayloadFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, msgNoToken)
		return
	}
	writeJSON(w, http.StatusOK, api.MeResponse{UserID: p.SubjectID, Email: p.SubjectEmail})
}
