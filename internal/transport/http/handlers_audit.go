package httptransport

import (
	"net/http"
	"sort"

	"syndik/internal/domain"
	"syndik/internal/storage"
)

// handleListAuditEntries returns the activity log newest-first. The recorder
// only appends; display ordering is a presentation concern and lives here.
func (h *Handler) handleListAuditEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := storage.LoadCollection[domain.AuditEntry](r.Context(), h.store, storage.KeyAuditEntries)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})
	writeJSON(w, http.StatusOK, entries)
}

func (h *Handler) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	records, err := storage.LoadCollection[domain.NotificationRecord](r.Context(), h.store, storage.KeyNotificationRecords)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SentAt.After(records[j].SentAt)
	})
	writeJSON(w, http.StatusOK, records)
}
