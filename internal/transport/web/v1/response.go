package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Gautamshailendra50/video-stream-app/internal/domain"
	"github.com/Gautamshailendra50/video-stream-app/internal/transport/web/mw"
)

// Message — тело каждого неуспешного (и большинства успешных) ответов.
type Message struct {
	Message string `json:"message"`
}

// MapDomainError решает HTTP-статус + текст для клиента.
// Детали внутренних ошибок наружу не отдаём.
func MapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrBadRange):
		return http.StatusBadRequest, "invalid range"
	case errors.Is(err, domain.ErrBadParams):
		return http.StatusBadRequest, "bad params"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not found"
	case errors.Is(err, domain.ErrMethodNotAllowed):
		return http.StatusMethodNotAllowed, "method not allowed"
	default:
		return http.StatusInternalServerError, "Server error"
	}
}

func WriteJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Request-ID", mw.RequestIDFromCtx(r.Context()))
	w.WriteHeader(status)
	if r.Method == http.MethodHead {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func WriteMessage(w http.ResponseWriter, r *http.Request, status int, msg string) {
	WriteJSON(w, r, status, Message{Message: msg})
}

func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := MapDomainError(err)
	WriteMessage(w, r, status, msg)
}
