package httpapi

import (
	"encoding/json"
	"net/http"

	"github.com/arxos/cadtool/pkg/errors"
)

func respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondAppError maps an *errors.AppError's code to an HTTP status and
// writes it as JSON; falls back to 500 for unrecognized errors.
func respondAppError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if code, ok := errors.CodeOf(err); ok {
		switch code {
		case errors.CodeEmptyEntities, errors.CodeTruncated, errors.CodeUnsupportedInput:
			status = http.StatusBadRequest
		case errors.CodeNoGeometry, errors.CodeNoWalls, errors.CodeDegenerateBounds:
			status = http.StatusUnprocessableEntity
		case errors.CodeInfeasible:
			status = http.StatusUnprocessableEntity
		case errors.CodeCancelled, errors.CodeTimeout:
			status = http.StatusGatewayTimeout
		case errors.CodeInternal:
			status = http.StatusInternalServerError
		}
	}
	respondError(w, status, err.Error())
}
