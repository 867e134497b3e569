package video

import (
	"net/http"
	"strconv"

	"github.com/Gautamshailendra50/video-stream-app/internal/transport/web/logx"
	"github.com/Gautamshailendra50/video-stream-app/internal/transport/web/mw"
	v1 "github.com/Gautamshailendra50/video-stream-app/internal/transport/web/v1"
)

// List отдаёт страницу каталога: {videos, total, pages}.
// GET /videos?page=N (без параметра — первая страница)
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "video.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	page := 1
	if s := r.URL.Query().Get("page"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			logx.Error(h.Log, reqID, op, "bad page param", err, "page_raw", s)
			v1.WriteMessage(w, r, http.StatusBadRequest, "Invalid page number")
			return
		}
		page = n
	}

	out, err := h.Catalog.ListPage(r.Context(), page)
	if err != nil {
		logx.Error(h.Log, reqID, op, "list failed", err, "page", page)
		status, _ := v1.MapDomainError(classify(err))
		if status == http.StatusBadRequest {
			v1.WriteMessage(w, r, status, "Invalid page number")
			return
		}
		v1.WriteMessage(w, r, status, "Error fetching videos")
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "page", page, "count", len(out.Videos), "total", out.Total)
	v1.WriteJSON(w, r, http.StatusOK, out)
}
