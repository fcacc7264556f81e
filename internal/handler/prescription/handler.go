package prescription

import (
	"net/http"
	"strings"
	"time"

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

func (h *Handler) RegisterRoutes(_, protected *gin.RouterGroup) {
	protected.POST("/prescriptions", h.IssuePrescription)
}

func (h *Handler) IssuePrescription(c *gin.Context) {
	var req model.IssuePrescriptionRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	var issuedAt time.Time
	if strings.TrimSpace(req.IssuedAt) != "" {
		t, err := model.ParseDateTime(req.IssuedAt)
		if err != nil {
			_ = c.Error(apperrors.NewBadRequest("invalid issued_at", err))
			return
		}
		issuedAt = t
	}

	prescription, err := h.service.IssuePrescription(c.Request.Context(), req.NationalID, req.License, req.Medications, issuedAt)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(prescription))
}
