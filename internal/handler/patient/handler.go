package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/clinic-registry/internal/handler"
	"github.com/jwalitptl/clinic-registry/internal/model"
	"github.com/jwalitptl/clinic-registry/internal/service/clinic"
)

type Handler struct {
	service clinic.ClinicServicer
}

func NewHandler(service clinic.ClinicServicer) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts reads on public and writes on protected.
func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	protected.POST("/patients", h.RegisterPatient)

	patients := public.Group("/patients")
	{
		patients.GET("", h.ListPatients)
		patients.GET("/:national_id", h.GetPatient)
		patients.GET("/:national_id/record", h.GetClinicalRecord)
	}
}

func (h *Handler) RegisterPatient(c *gin.Context) {
	var req model.RegisterPatientRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	patient, err := h.service.RegisterPatient(c.Request.Context(), req.Name, req.NationalID, req.BirthDate)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(patient))
}

func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.service.ListPatients(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patients))
}

func (h *Handler) GetPatient(c *gin.Context) {
	patient, err := h.service.FindPatient(c.Request.Context(), c.Param("national_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patient))
}

func (h *Handler) GetClinicalRecord(c *gin.Context) {
	record, err := h.service.ClinicalRecord(c.Request.Context(), c.Param("national_id"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(record))
}
