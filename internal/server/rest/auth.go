package rest

import (
	"encoding/json"
	"net/http"

	"github.com/dmitrijs2005/travelboard/internal/common"
	"github.com/dmitrijs2005/travelboard/internal/logging"
	"github.com/dmitrijs2005/travelboard/internal/server/services"
)

type authHandler struct {
	svc    *services.AuthService
	logger logging.Logger
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return common.NewValidationError("body", "must be a JSON object")
	}
	return nil
}

func (h *authHandler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(r.Context(), w, h.logger, err, "")
		return
	}
	sess, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(r.Context(), w, h.logger, err, "")
		return
	}
	writeJSON(w, http.StatusOK, Envelope{Success: true, Data: sess, Message: "login successful"})
}

func (h *authHandler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(r.Context(), w, h.logger, err, "")
		return
	}
	sess, err := h.svc.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(r.Context(), w, h.logger, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, Envelope{Success: true, Data: sess, Message: "registration successful"})
}

func (h *authHandler) profile(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFrom(r.Context())
	if !ok {
		writeError(r.Context(), w, h.logger, common.ErrorUnauthorized, "")
		return
	}
	u, err := h.svc.Profile(r.Context(), id)
	if err != nil {
		writeError(r.Context(), w, h.logger, err, "")
		return
	}
	writeOK(w, http.StatusOK, u, "")
}

// credentials lists the demo logins. Only mounted under the roster policy.
func (h *authHandler) credentials(w http.ResponseWriter, r *http.Request) {
	accounts, ok := h.svc.Roster()
	if !ok {
		writeError(r.Context(), w, h.logger, common.ErrorNotFound, "")
		return
	}
	writeJSON(w, http.StatusOK, Envelope{
		Success: true,
		Data:    accounts,
		Message: "demo credentials, not for production use",
	})
}
