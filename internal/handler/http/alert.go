package http

import (
	"io"
	"net/http"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
)

// maxAlertSize bounds a pushed alert. The binary format cannot exceed a few
// kilobytes without vendor data.
const maxAlertSize = 64 << 10

// pushAlert answers 202 when the alert scheduled a session and 204 when it
// was ignored. Unauthenticated alerts are not distinguished from alerts for
// other stores.
func (h *Handler) pushAlert(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxAlertSize))
	if err == nil && len(raw) == 0 {
		err = ErrEmptyAlert
	}
	if err != nil {
		log.Err(err).Str("func", "*Handler.pushAlert").Msg("failed to read alert body")
		http.Error(w, err.Error(), statusFromError(err))
		return
	}

	accepted, err := h.alerts.HandleAlert(r.Context(), raw)
	if err != nil {
		http.Error(w, "malformed alert", statusFromError(err))
		return
	}

	if !accepted {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}
