package http

import (
	"net/http"

	"github.com/MKhiriev/go-pim-sync/internal/logger"
	"github.com/MKhiriev/go-pim-sync/internal/utils"
	"github.com/MKhiriev/go-pim-sync/models"
)

type syncResponse struct {
	Mode   string `json:"mode"`
	Queued bool   `json:"queued"`
}

// triggerSync queues a session in the mode named by the "mode" query
// parameter, two-way by default. A session already waiting in the queue
// yields 409.
func (h *Handler) triggerSync(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	mode := models.SyncTwoWay
	if name := r.URL.Query().Get("mode"); name != "" {
		var err error
		if mode, err = models.ParseSyncMode(name); err != nil {
			log.Err(err).Str("func", "*Handler.triggerSync").Msg("invalid sync mode")
			http.Error(w, err.Error(), statusFromError(err))
			return
		}
	}

	queued := h.job.Trigger(mode)
	status := http.StatusAccepted
	if !queued {
		status = http.StatusConflict
	}

	utils.WriteJSON(w, syncResponse{Mode: mode.String(), Queued: queued}, status)
}
