package api

import (
	"net/http"

	"rentdesk/internal/service"
)

type SyncHandler struct {
	sync service.SyncService
}

func NewSyncHandler(sync service.SyncService) *SyncHandler {
	return &SyncHandler{sync: sync}
}

// SyncAsset triggers an on-demand reconciliation of one asset's feed.
func (h *SyncHandler) SyncAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	report, err := h.sync.SyncAsset(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// PreviewFeed fetches and parses a feed URL without writing anything,
// so operators can inspect a partner calendar before attaching it.
func (h *SyncHandler) PreviewFeed(w http.ResponseWriter, r *http.Request) {
	var req FeedPreviewRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.sync.PreviewFeed(r.Context(), req.URL)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := FeedPreviewResponse{Skipped: result.Skipped, Events: make([]FeedPreviewEvent, 0, len(result.Events))}
	for _, ev := range result.Events {
		resp.Events = append(resp.Events, FeedPreviewEvent{
			Summary:   ev.Summary,
			UID:       ev.UID,
			StartDate: ev.Start.Format(dateLayout),
			EndDate:   ev.End.Format(dateLayout),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
