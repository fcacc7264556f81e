package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-registry/internal/handler"
	"github.com/jwalitptl/clinic-registry/internal/model"
	"github.com/jwalitptl/clinic-registry/internal/service/clinic"
	apperrors "github.com/jwalitptl/clinic-registry/pkg/errors"
)

type Handler struct {
	service clinic.ClinicServicer
}

func NewHandler(service clinic.ClinicServicer) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	protected.POST("/appointments", h.ScheduleAppointment)
	public.GET("/appointments", h.ListAppointments)
}

func (h *Handler) ScheduleAppointment(c *gin.Context) {
	var req model.ScheduleAppointmentRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	at, err := model.ParseDateTime(req.ScheduledAt)
	if err != nil {
		_ = c.Error(apperrors.NewBadRequest("invalid scheduled_at", err))
		return
	}

	appointment, err := h.service.ScheduleAppointment(c.Request.Context(), req.NationalID, req.License, req.Specialty, at)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(appointment))
}

func (h *Handler) ListAppointments(c *gin.Context) {
	appointments, err := h.service.ListAppointments(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}
