package domain

import "context"

// Хранилище метаданных каталога.
// Порядок выдачи VideosPage стабилен между вызовами: created_at DESC, затем id.
type VideosRepo interface {
	Close()
	Ping(context.Context) error

	CreateVideo(ctx context.Context, v Video) (Video, error)
	// Возвращает ErrNotFound, если записи нет.
	VideoByID(ctx context.Context, id VideoID) (Video, error)
	// Обновляет title/file_name/mime_type/size_bytes по id. ErrNotFound, если записи нет.
	UpdateVideo(ctx context.Context, v Video) error
	// ErrNotFound, если записи нет.
	DeleteVideo(ctx context.Context, id VideoID) error
	// Страница + общее количество записей.
	VideosPage(ctx context.Context, offset, limit int) ([]Video, int64, error)
}
