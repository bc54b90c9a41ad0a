package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/barmonse/teg-server/internal/api/middleware"
	"github.com/barmonse/teg-server/internal/api/request"
	"github.com/barmonse/teg-server/internal/api/response"
	"github.com/barmonse/teg-server/internal/model"
	"github.com/barmonse/teg-server/internal/services/session"
)

// SessionHandler handles session-related endpoints
type SessionHandler struct {
	controller session.ControllerInterface
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(controller session.ControllerInterface) *SessionHandler {
	return &SessionHandler{
		controller: controller,
	}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())

	var req request.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	created, err := h.controller.Create(r.Context(), user.ID, req.Name, req.MaxPlayers)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.SessionFromModel(created))
}

// Get handles GET /api/v1/sessions/{id}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.SessionID(mux.Vars(r)["id"])

	found, err := h.controller.Get(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(found))
}

// List handles GET /api/v1/sessions?status=WAITING
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	statusParam := r.URL.Query().Get("status")
	if statusParam == "" {
		statusParam = string(model.StatusWaiting)
	}
	status := model.SessionStatus(statusParam)
	switch status {
	case model.StatusWaiting, model.StatusInProgress, model.StatusCancelled:
	default:
		WriteError(w, NewInvalidRequestError("unknown status"))
		return
	}

	sessions, err := h.controller.ListByStatus(r.Context(), status)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionListFromModel(sessions))
}

// Join handles POST /api/v1/sessions/{id}/join
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	joined, err := h.controller.Join(r.Context(), id, user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(joined))
}

// Leave handles POST /api/v1/sessions/{id}/leave
func (h *SessionHandler) Leave(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	left, err := h.controller.Leave(r.Context(), id, user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(left))
}

// SetColor handles PATCH /api/v1/sessions/{id}/color
func (h *SessionHandler) SetColor(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	var req request.SetColorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	color, ok := model.ParseColor(req.Color)
	if !ok {
		WriteError(w, NewInvalidRequestError("unknown color"))
		return
	}

	updated, err := h.controller.SetColor(r.Context(), id, user.ID, color)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(updated))
}

// Start handles POST /api/v1/sessions/{id}/start
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	user := middleware.MustGetUser(r.Context())
	id := model.SessionID(mux.Vars(r)["id"])

	started, err := h.controller.Start(r.Context(), id, user.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(started))
}
