package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "github.com/jwalitptl/clinic-registry/pkg/errors"
	pkgvalidator "github.com/jwalitptl/clinic-registry/pkg/validator"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func NewSuccessResponse(data interface{}) *Response {
	return &Response{
		Status: "success",
		Data:   data,
	}
}

func NewErrorResponse(message string) *Response {
	return &Response{
		Status:  "error",
		Message: message,
	}
}

// StatusFor maps err to an HTTP status and a client-safe message.
func StatusFor(err error) (int, string) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Code == apperrors.ErrInternal {
			return http.StatusInternalServerError, appErr.Message
		}
		return appErr.StatusCode(), appErr.Error()
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return http.StatusBadRequest, pkgvalidator.Describe(verrs)
	}
	return http.StatusInternalServerError, "internal server error"
}

// RespondError writes the error envelope for err.
func RespondError(c *gin.Context, err error) {
	status, message := StatusFor(err)
	c.JSON(status, NewErrorResponse(message))
}

// BindJSON decodes the body into obj. On failure it records a bad request on
// the context and returns false; the error middleware renders it.
func BindJSON(c *gin.Context, obj interface{}) bool {
	err := c.ShouldBindJSON(obj)
	if err == nil {
		return true
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		_ = c.Error(verrs)
	} else {
		_ = c.Error(apperrors.NewBadRequest("invalid request body", err))
	}
	return false
}
