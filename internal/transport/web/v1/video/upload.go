package video

import (
	"errors"
	"net/http"

	"github.com/Gautamshailendra50/video-stream-app/internal/domain"
	"github.com/Gautamshailendra50/video-stream-app/internal/transport/web/logx"
	"github.com/Gautamshailendra50/video-stream-app/internal/transport/web/mw"
	v1 "github.com/Gautamshailendra50/video-stream-app/internal/transport/web/v1"
)

// Upload принимает multipart-форму: title + video (файл).
// POST /upload
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	const op = "video.upload"
	reqID := mw.RequestIDFromCtx(r.Context())

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		logx.Error(h.Log, reqID, op, "parse form", err)
		// превышение MaxBytesReader приезжает сюда же
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			v1.WriteMessage(w, r, http.StatusRequestEntityTooLarge, "file too large")
			return
		}
		v1.WriteMessage(w, r, http.StatusBadRequest, "invalid multipart")
		return
	}

	file, header, err := r.FormFile("video")
	if err != nil {
		logx.Error(h.Log, reqID, op, "form file", err)
		v1.WriteMessage(w, r, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	mime := header.Header.Get("Content-Type")
	v, err := h.Catalog.Upload(r.Context(), r.FormValue("title"), file, header.Filename, mime)
	if err != nil {
		logx.Error(h.Log, reqID, op, "upload failed", err)
		v1.WriteDomainError(w, r, classify(err))
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", v.ID, "file", v.FileName, "size", v.SizeBytes)
	v1.WriteMessage(w, r, http.StatusOK, "Video uploaded successfully")
}

// classify: ошибки каталога без доменной метки считаем внутренними.
func classify(err error) error {
	switch {
	case errors.Is(err, domain.ErrBadParams),
		errors.Is(err, domain.ErrBadRange),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrMethodNotAllowed):
		return err
	default:
		return domain.ErrUnexpected
	}
}
