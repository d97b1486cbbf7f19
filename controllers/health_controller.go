package controllers

import (
	"net/http"
)

// HealthController serves liveness and readiness probes
type HealthController struct {
	readiness Readiness
}

// NewHealthController creates a new health controller
func NewHealthController(readiness Readiness) *HealthController {
	return &HealthController{readiness: readiness}
}

// HealthResponse is the body of the probe endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// Health handles GET /health; it answers as long as the process serves requests
func (c *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "healthy", Service: "proof-calc"})
}

// Ready handles GET /ready; it is 503 until the proof table has loaded
func (c *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	if !c.readiness.Ready() {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "loading", Service: "proof-calc"})
		return
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ready", Service: "proof-calc"})
}
