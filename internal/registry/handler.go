package registry

import (
	"net/http"

	"github.com/teamtracker/teamtracker-api/internal/transport"
)

type ServiceAPI interface {
	NoteTypes() ([]NoteType, error)
	LeaveTypes() ([]LeaveType, error)
	Themes() ([]Theme, error)
	ValidateNoteType(name string) error
	ValidateLeaveType(name string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetNoteTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.NoteTypes()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, types)
}

func (h *Handler) GetLeaveTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.Service.LeaveTypes()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, types)
}

func (h *Handler) GetThemes(w http.ResponseWriter, r *http.Request) {
	themes, err := h.Service.Themes()
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, themes)
}
