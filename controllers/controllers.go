package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/blogem/proof-calc/engine"
	"github.com/blogem/proof-calc/models"
	"github.com/blogem/proof-calc/services"
)

// maxBodyBytes bounds request bodies; calculator inputs are a few short fields
const maxBodyBytes = 64 << 10

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeBadRequest writes a bad_request error
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, models.NewErrorResponse(models.KindBadRequest, message))
}

// writeError maps a service error to its status code and error kind. Internal
// errors are logged and their text is not sent to the client.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var verrs models.ValidationErrors
	if errors.As(err, &verrs) {
		writeBadRequest(w, verrs.Error())
		return
	}

	kind := engine.Kind(err)
	status := StatusForKind(kind)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logger.Error("request failed", zap.Error(err))
		message = "an internal error occurred"
	}
	writeJSON(w, status, models.NewErrorResponse(kind, message))
}

// StatusForKind is the HTTP status of an error kind
func StatusForKind(kind string) int {
	switch kind {
	case "invalid_format", "not_a_number", "non_positive_weight", models.KindBadRequest:
		return http.StatusBadRequest
	case "proof_not_found":
		return http.StatusUnprocessableEntity
	case "table_not_ready":
		return http.StatusServiceUnavailable
	case models.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON reads a JSON request body into dst
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

// Readiness reports whether calculations can be served
type Readiness interface {
	Ready() bool
}

// Controllers holds all controller instances
type Controllers struct {
	Auth   *AuthController
	Calc   *CalcController
	Log    *LogController
	Health *HealthController
}

// NewControllers creates and initializes all controller instances. returnURL
// is where the browser lands after login and logout.
func NewControllers(services *services.Services, readiness Readiness, returnURL string, logger *zap.Logger) *Controllers {
	return &Controllers{
		Auth:   NewAuthController(returnURL, logger),
		Calc:   NewCalcController(services, logger),
		Log:    NewLogController(services, logger),
		Health: NewHealthController(readiness),
	}
}

// writeUnauthorized writes an unauthorized error
func writeUnauthorized(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnauthorized, models.NewErrorResponse(models.KindUnauthorized, message))
}
