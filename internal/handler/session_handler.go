package handler

import (
	"net/http"
	"strconv"

	"bankist/internal/service"
)

type SessionHandler struct {
	controller *service.Controller
}

func NewSessionHandler(controller *service.Controller) *SessionHandler {
	return &SessionHandler{
		controller: controller,
	}
}

type LoginRequest struct {
	Username RawText `json:"username"`
	PIN      RawText `json:"pin"`
}

type CloseAccountRequest struct {
	Username RawText `json:"username"`
	PIN      RawText `json:"pin"`
}

func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if appErr := decode(r, &req); appErr != nil {
		writeError(w, appErr)
		return
	}

	dashboard, err := h.controller.Login(string(req.Username), string(req.PIN))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.controller.Logout()
	w.WriteHeader(http.StatusNoContent)
}

// GetDashboard renders the session. ?sort=asc or ?sort=true shows movements
// ascending for this request without changing the session toggle.
func (h *SessionHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	var sorted *bool
	if raw := r.URL.Query().Get("sort"); raw != "" {
		asc := raw == "asc"
		if !asc {
			asc, _ = strconv.ParseBool(raw)
		}
		sorted = &asc
	}

	dashboard, err := h.controller.Dashboard(sorted)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

func (h *SessionHandler) ToggleSort(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.controller.ToggleSort()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dashboard)
}

func (h *SessionHandler) CloseAccount(w http.ResponseWriter, r *http.Request) {
	var req CloseAccountRequest
	if appErr := decode(r, &req); appErr != nil {
		writeError(w, appErr)
		return
	}

	if err := h.controller.CloseAccount(string(req.Username), string(req.PIN)); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *SessionHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.controller.Accounts())
}
