package handler

// ReadinessProbe reports whether a dependency is usable.
type ReadinessProbe func() error

// Handler serves the health endpoints.
type Handler struct {
	probes map[string]ReadinessProbe
}

// NewHandler creates a new handler instance. Readiness fails while any probe
// returns an error.
func NewHandler(probes map[string]ReadinessProbe) *Handler {
	return &Handler{probes: probes}
}
