package video

import (
	"errors"
	"net/http"

	"github.com/Gautamshailendra50/video-stream-app/internal/domain"
	"github.com/Gautamshailendra50/video-stream-app/internal/transport/web/logx"
	"github.com/Gautamshailendra50/video-stream-app/internal/transport/web/mw"
	v1 "github.com/Gautamshailendra50/video-stream-app/internal/transport/web/v1"
)

// Delete убирает и файл, и запись каталога.
// DELETE /delete/{id}
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "video.delete"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := pathID(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err)
		v1.WriteMessage(w, r, http.StatusNotFound, "Video not found")
		return
	}

	if err := h.Catalog.Delete(r.Context(), id); err != nil {
		logx.Error(h.Log, reqID, op, "delete failed", err, "id", id)
		if errors.Is(err, domain.ErrNotFound) {
			v1.WriteMessage(w, r, http.StatusNotFound, "Video not found")
			return
		}
		v1.WriteDomainError(w, r, classify(err))
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", id)
	v1.WriteMessage(w, r, http.StatusOK, "Video deleted successfully")
}
