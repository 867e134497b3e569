package video

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Gautamshailendra50/video-stream-app/internal/domain"
	"github.com/Gautamshailendra50/video-stream-app/internal/transport/web/logx"
	"github.com/Gautamshailendra50/video-stream-app/internal/transport/web/mw"
	v1 "github.com/Gautamshailendra50/video-stream-app/internal/transport/web/v1"
)

// Stream отдаёт тело файла: целиком (200) или диапазон (206).
// Тело не буферизуется — io.Copy останавливается, как только клиент отвалился.
// GET|HEAD /stream/{filename}
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	const op = "video.stream"
	reqID := mw.RequestIDFromCtx(r.Context())

	name, _ := url.PathUnescape(r.PathValue("filename"))
	if !domain.ValidBlobRef(name) {
		logx.Error(h.Log, reqID, op, "bad filename", domain.ErrNotFound, "filename_raw", name)
		v1.WriteMessage(w, r, http.StatusNotFound, "File not found")
		return
	}

	rangeHdr := r.Header.Get("Range")
	rc, contentLen, contentRange, totalSize, err := h.Storage.Open(r.Context(), name, rangeHdr)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			logx.Error(h.Log, reqID, op, "file not found", err, "filename", name)
			v1.WriteMessage(w, r, http.StatusNotFound, "File not found")
		case errors.Is(err, domain.ErrBadRange):
			logx.Error(h.Log, reqID, op, "malformed range", err, "range", rangeHdr)
			v1.WriteMessage(w, r, http.StatusBadRequest, "invalid range")
		default:
			logx.Error(h.Log, reqID, op, "open failed", err, "filename", name)
			v1.WriteDomainError(w, r, domain.ErrUnexpected)
		}
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "video/mp4")
	w.Header().Set("Content-Length", strconv.FormatInt(contentLen, 10))
	if contentRange != "" {
		w.Header().Set("Content-Range", contentRange)
		w.Header().Set("Accept-Ranges", "bytes")
		w.WriteHeader(http.StatusPartialContent)
	} else {
		w.Header().Set("Accept-Ranges", "bytes")
		w.WriteHeader(http.StatusOK)
	}

	if r.Method == http.MethodHead {
		logx.Info(h.Log, reqID, op, "head ok", "filename", name, "size", totalSize)
		return
	}

	n, err := io.Copy(w, rc)
	if err != nil {
		// обычное дело: клиент закрыл соединение при перемотке
		logx.Info(h.Log, reqID, op, "stream interrupted", "filename", name, "written", n)
		return
	}
	logx.Info(h.Log, reqID, op, "ok", "filename", name, "written", n, "range", rangeHdr != "")
}
