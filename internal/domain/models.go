package domain

import (
	"time"

	"github.com/google/uuid"
)

// Базовый идентификатор записи каталога
type VideoID = uuid.UUID

// Метаданные видео (само тело файла живёт в BlobStorage)
type Video struct {
	ID        VideoID   `json:"id"`
	Title     string    `json:"title"`
	MIME      string    `json:"mime"`
	SizeBytes int64     `json:"size"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"-"`

	// Ссылка на файл в хранилище (имя файла в каталоге загрузок).
	// Меняется только вместе с самим блобом.
	FileName string `json:"videoPath"`
}

// Страница каталога для выдачи наружу
type VideoPage struct {
	Videos []Video `json:"videos"`
	Total  int64   `json:"total"`
	Pages  int     `json:"pages"`
}
