// filepath: internal/api/handlers/housekeeping_handler.go
package handlers

import (
	"net/http"
)

// TriggerHousekeeping runs the housekeeping tasks once and shows the report on the admin page.
func (h *Handlers) TriggerHousekeeping(w http.ResponseWriter, r *http.Request) {
	report, err := h.Housekeeping.TriggerHousekeeping(r.Context())
	if err != nil && report == nil {
		h.internalError(w, r, "TriggerHousekeeping: run failed", err)
		return
	}

	details := map[string]interface{}{
		"expired_sessions": report.ExpiredSessions,
		"orphaned_uploads": report.OrphanedUploads,
		"reclaimed_bytes":  report.ReclaimedBytes,
	}
	if err != nil {
		details["error"] = err.Error()
	}
	h.Auditor.Log(r.Context(), "housekeeping.run", getUserFromContext(r), "Housekeeping", details)

	h.renderAdmin(w, r, http.StatusOK, report)
}
