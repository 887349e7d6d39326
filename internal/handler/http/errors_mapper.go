package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/energy-keeper/internal/service"
	"github.com/MKhiriev/energy-keeper/internal/validators"
)

var errorStatusMap = map[error]int{
	ErrInvalidJSON: http.StatusBadRequest,

	validators.ErrEmptyEmail:       http.StatusBadRequest,
	validators.ErrEmptyPassword:    http.StatusBadRequest,
	validators.ErrShortPassword:    http.StatusBadRequest,
	validators.ErrEmptyDisplayName: http.StatusBadRequest,

	service.ErrDuplicateAccount:   http.StatusConflict,
	service.ErrInvalidCredentials: http.StatusUnauthorized,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeError responds with the status mapped from err. Client errors carry
// the error text; server errors only the generic status text.
func writeError(w http.ResponseWriter, err error) {
	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		http.Error(w, http.StatusText(status), status)
		return
	}
	http.Error(w, err.Error(), status)
}
