package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is reports whether target is an AppError carrying the same code, so callers
// can match kinds with errors.Is against the exported sentinels.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// StatusCode maps the error kind to an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrNotFound, ErrPatientNotFound, ErrDoctorNotFound:
		return http.StatusNotFound
	case ErrPatientAlreadyExists, ErrDoctorAlreadyExists, ErrDuplicateAppointment:
		return http.StatusConflict
	case ErrDoctorUnavailable:
		return http.StatusUnprocessableEntity
	case ErrBadRequest, ErrInvalidPrescription:
		return http.StatusBadRequest
	case ErrUnauthorized:
		return http.StatusUnauthorized
	case ErrForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// Kind returns a stable label for the code, used in logs and metrics.
func (e *AppError) Kind() string {
	if k, ok := kinds[e.Code]; ok {
		return k
	}
	return "unknown"
}

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrForbidden
	ErrInternal
)

// Registry error codes
const (
	ErrPatientNotFound ErrorCode = iota + 2000
	ErrPatientAlreadyExists
	ErrDoctorNotFound
	ErrDoctorAlreadyExists
	ErrDuplicateAppointment
	ErrDoctorUnavailable
	ErrInvalidPrescription
)

var kinds = map[ErrorCode]string{
	ErrNotFound:             "not_found",
	ErrBadRequest:           "bad_request",
	ErrUnauthorized:         "unauthorized",
	ErrForbidden:            "forbidden",
	ErrInternal:             "internal",
	ErrPatientNotFound:      "patient_not_found",
	ErrPatientAlreadyExists: "patient_already_exists",
	ErrDoctorNotFound:       "doctor_not_found",
	ErrDoctorAlreadyExists:  "doctor_already_exists",
	ErrDuplicateAppointment: "duplicate_appointment",
	ErrDoctorUnavailable:    "doctor_unavailable",
	ErrInvalidPrescription:  "invalid_prescription",
}

// Sentinels for errors.Is. Only the code is compared.
var (
	PatientNotFoundErr      = &AppError{Code: ErrPatientNotFound, Message: "patient not found"}
	PatientAlreadyExistsErr = &AppError{Code: ErrPatientAlreadyExists, Message: "patient already exists"}
	DoctorNotFoundErr       = &AppError{Code: ErrDoctorNotFound, Message: "doctor not found"}
	DoctorAlreadyExistsErr  = &AppError{Code: ErrDoctorAlreadyExists, Message: "doctor already exists"}
	DuplicateAppointmentErr = &AppError{Code: ErrDuplicateAppointment, Message: "duplicate appointment"}
	DoctorUnavailableErr    = &AppError{Code: ErrDoctorUnavailable, Message: "doctor unavailable"}
	InvalidPrescriptionErr  = &AppError{Code: ErrInvalidPrescription, Message: "invalid prescription"}
)

// Error constructors
func NewNotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func NewBadRequest(message string, err error) *AppError {
	return &AppError{
		Code:    ErrBadRequest,
		Message: message,
		Err:     err,
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

func Unauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

func PatientNotFound(nationalID string) *AppError {
	return &AppError{
		Code:    ErrPatientNotFound,
		Message: fmt.Sprintf("no patient with national ID %q", nationalID),
	}
}

func PatientAlreadyExists(nationalID string) *AppError {
	return &AppError{
		Code:    ErrPatientAlreadyExists,
		Message: fmt.Sprintf("a patient with national ID %q already exists", nationalID),
	}
}

func DoctorNotFound(license string) *AppError {
	return &AppError{
		Code:    ErrDoctorNotFound,
		Message: fmt.Sprintf("no doctor with license %q", license),
	}
}

func DoctorAlreadyExists(license string) *AppError {
	return &AppError{
		Code:    ErrDoctorAlreadyExists,
		Message: fmt.Sprintf("a doctor with license %q already exists", license),
	}
}

func DuplicateAppointment(license, at string) *AppError {
	return &AppError{
		Code:    ErrDuplicateAppointment,
		Message: fmt.Sprintf("doctor %q already has an appointment at %s", license, at),
	}
}

func DoctorUnavailable(license, weekday string) *AppError {
	return &AppError{
		Code:    ErrDoctorUnavailable,
		Message: fmt.Sprintf("doctor %q does not practice any specialty on %s", license, weekday),
	}
}

func InvalidPrescription(reason string) *AppError {
	return &AppError{
		Code:    ErrInvalidPrescription,
		Message: fmt.Sprintf("invalid prescription: %s", reason),
	}
}

// KindOf returns the kind label of err when it wraps an AppError.
func KindOf(err error) string {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Kind()
	}
	return "unknown"
}
