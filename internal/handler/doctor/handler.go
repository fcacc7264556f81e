package doctor

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

func (h *Handler) RegisterRoutes(public, protected *gin.RouterGroup) {
	protected.POST("/doctors", h.RegisterDoctor)
	protected.POST("/doctors/:license/specialties", h.AddSpecialty)

	doctors := public.Group("/doctors")
	{
		doctors.GET("", h.ListDoctors)
		doctors.GET("/:license", h.GetDoctor)
	}
}

func (h *Handler) RegisterDoctor(c *gin.Context) {
	var req model.RegisterDoctorRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	doctor, err := h.service.RegisterDoctor(c.Request.Context(), req.Name, req.License)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(doctor))
}

func (h *Handler) ListDoctors(c *gin.Context) {
	doctors, err := h.service.ListDoctors(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctors))
}

func (h *Handler) GetDoctor(c *gin.Context) {
	doctor, err := h.service.FindDoctor(c.Request.Context(), c.Param("license"))
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(doctor))
}

func (h *Handler) AddSpecialty(c *gin.Context) {
	var req model.AddSpecialtyRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	doctor, err := h.service.AddSpecialty(c.Request.Context(), c.Param("license"), req.Name, req.Days)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(doctor))
}
