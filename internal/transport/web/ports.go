package web

import (
	"context"

	"github.com/Gautamshailendra50/video-stream-app/internal/domain"
)

// Storage — то, что нужно web-слою от хранилища блобов: сам контракт
// domain.BlobStorage плюс Ping для readiness-пробы.
type Storage interface {
	domain.BlobStorage
	Ping(context.Context) error
}
