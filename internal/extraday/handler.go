package extraday

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/teamtracker/teamtracker-api/internal/auth"
	"github.com/teamtracker/teamtracker-api/internal/transport"
	"github.com/teamtracker/teamtracker-api/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	List(userID string) ([]*ExtraDayWithEmployee, error)
	ListForEmployee(employeeID int64, userID string) ([]*ExtraDay, error)
	Create(userID string, dto CreateExtraDayDTO) (*ExtraDayWithEmployee, error)
	Update(id int64, userID string, updates map[string]interface{}) (*ExtraDay, error)
	Delete(id int64, userID string) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) GetExtraDays(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	days, err := h.Service.List(user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, days)
}

// GetEmployeeExtraDays lists extra-days records for a single employee. The
// path parameter is the employee's id, not a record id.
func (h *Handler) GetEmployeeExtraDays(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	employeeID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return
	}

	days, err := h.Service.ListForEmployee(employeeID, user.ID)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, days)
}

func (h *Handler) CreateExtraDay(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateExtraDayDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(user.ID, dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateExtraDay(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid extra days ID")
		return
	}

	var updates map[string]interface{}
	if err := h.DecodeJSON(r, &updates); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ed, err := h.Service.Update(id, user.ID, updates)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, ed)
}

func (h *Handler) DeleteExtraDay(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid extra days ID")
		return
	}

	if err := h.Service.Delete(id, user.ID); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "Extra days deleted successfully"})
}
