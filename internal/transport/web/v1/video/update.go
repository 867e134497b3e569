package video

import (
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"github.com/Gautamshailendra50/video-stream-app/internal/domain"
	"github.com/Gautamshailendra50/video-stream-app/internal/transport/web/logx"
	"github.com/Gautamshailendra50/video-stream-app/internal/transport/web/mw"
	v1 "github.com/Gautamshailendra50/video-stream-app/internal/transport/web/v1"
)

// Update меняет заголовок и/или файл. Оба поля формы опциональны.
// PUT /update/{id}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "video.update"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := pathID(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err)
		v1.WriteMessage(w, r, http.StatusNotFound, "Video not found")
		return
	}

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		logx.Error(h.Log, reqID, op, "parse form", err)
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			v1.WriteMessage(w, r, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		v1.WriteMessage(w, r, http.StatusBadRequest, "invalid multipart")
		return
	}

	var (
		file     io.Reader
		hintName string
		mime     string
	)
	if f, header, err := r.FormFile("video"); err == nil {
		defer f.Close()
		file = f
		hintName = header.Filename
		mime = header.Header.Get("Content-Type")
	}

	v, err := h.Catalog.Update(r.Context(), id, r.FormValue("title"), file, hintName, mime)
	if err != nil {
		logx.Error(h.Log, reqID, op, "update failed", err, "id", id)
		if errors.Is(err, domain.ErrNotFound) {
			v1.WriteMessage(w, r, http.StatusNotFound, "Video not found")
			return
		}
		v1.WriteDomainError(w, r, classify(err))
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", v.ID, "file", v.FileName)
	v1.WriteMessage(w, r, http.StatusOK, "Video updated successfully")
}

func pathID(r *http.Request) (domain.VideoID, error) {
	raw, _ := url.PathUnescape(r.PathValue("id"))
	return uuid.Parse(raw)
}
