package handler

import (
	"net/http"

	"innkeep/internal/reservations/service"
	apperrors "innkeep/pkg/errors"
	httputil "innkeep/pkg/http"
	"innkeep/pkg/logger"
	"innkeep/pkg/model"

	"github.com/julienschmidt/httprouter"
)

const basePath = "/api/v1/reservations"

type ReservationHandler struct {
	service service.ReservationService
	log     *logger.Logger
}

func NewReservationHandler(service service.ReservationService, log *logger.Logger) *ReservationHandler {
	return &ReservationHandler{
		service: service,
		log:     log,
	}
}

func (h *ReservationHandler) Open(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var candidate model.Reservation
	if err := httputil.DecodeJSON(r, &candidate); err != nil {
		h.writeError(w, "Open", err)
		return
	}

	reservation, err := h.service.Open(r.Context(), &candidate)
	if err != nil {
		h.writeError(w, "Open", err)
		return
	}

	if err := httputil.WriteCreatedAt(w, basePath+"/id/"+reservation.ID, reservation); err != nil {
		h.log.Error("failed to write created response", "handler", "Open", "operation", "WriteCreatedAt", "error", err)
	}
}

func (h *ReservationHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservation, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "GetByID", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	reservations, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		h.writeError(w, "GetAll", err)
		return
	}

	if err := httputil.WritePaginated(w, reservations, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

// FindByDateRange lists reservations whose checkin lies in [start, end].
func (h *ReservationHandler) FindByDateRange(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	start, err := httputil.ExtractDate(r, "start")
	if err != nil {
		h.writeError(w, "FindByDateRange", err)
		return
	}
	end, err := httputil.ExtractDate(r, "end")
	if err != nil {
		h.writeError(w, "FindByDateRange", err)
		return
	}
	if start.After(end) {
		h.writeError(w, "FindByDateRange", apperrors.InvalidInput("start must not be after end").WithDetails(map[string]any{
			"start": start.String(),
			"end":   end.String(),
		}))
		return
	}

	reservations, err := h.service.FindBetween(r.Context(), start, end)
	if err != nil {
		h.writeError(w, "FindByDateRange", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservations); err != nil {
		h.log.Error("failed to write success response", "handler", "FindByDateRange", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) FindInUse(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	reservations, err := h.service.FindInUse(r.Context())
	if err != nil {
		h.writeError(w, "FindInUse", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservations); err != nil {
		h.log.Error("failed to write success response", "handler", "FindInUse", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) Cancel(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	reservation, err := h.service.Cancel(r.Context(), ps.ByName("id"))
	if err != nil {
		h.writeError(w, "Cancel", err)
		return
	}

	if err := httputil.WriteSuccess(w, reservation); err != nil {
		h.log.Error("failed to write success response", "handler", "Cancel", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ReservationHandler) writeError(w http.ResponseWriter, handler string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", handler, "operation", "WriteError", "error", writeErr)
	}
}

func (h *ReservationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST(basePath, h.Open)
	router.GET(basePath, h.GetAll)
	router.GET(basePath+"/id/:id", h.GetByID)
	router.GET(basePath+"/by-date-range", h.FindByDateRange)
	router.GET(basePath+"/in-use", h.FindInUse)
	router.POST(basePath+"/cancel/:id", h.Cancel)
}
