package video

import (
	"log"

	"github.com/Gautamshailendra50/video-stream-app/internal/catalog"
	"github.com/Gautamshailendra50/video-stream-app/internal/domain"
)

type Handler struct {
	Log     *log.Logger
	Catalog *catalog.Service
	Storage domain.BlobStorage // стриминг идёт мимо каталога, напрямую по имени файла
}
