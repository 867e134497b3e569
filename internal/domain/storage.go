package domain

import (
	"context"
	"io"
)

// Хранилище бинарного контента (локальный диск или S3/MinIO)
type BlobPutResult struct {
	FileName string // ссылка для Video.FileName
	Size     int64
}

type BlobStorage interface {
	// Сохранение нового файла. hintName нужен только ради расширения.
	Put(ctx context.Context, r io.Reader, hintName string) (BlobPutResult, error)
	// Есть ли файл в хранилище.
	Exists(ctx context.Context, fileName string) bool
	// Удаление. Отсутствующий файл — успех (идемпотентно), остальное — ошибка.
	Delete(ctx context.Context, fileName string) error
	// Получение контента для отдачи клиенту (stream).
	// rangeHeader — сырой заголовок Range ("bytes=START-END", опционально).
	// Возвращает поток, длину отдаваемого тела (полного или диапазона),
	// Content-Range (пустой, если диапазон не запрошен) и полный размер файла.
	// ErrNotFound — файла нет; ErrBadRange — заголовок есть, но не парсится.
	Open(ctx context.Context, fileName, rangeHeader string) (rc io.ReadCloser, contentLen int64, contentRange string, totalSize int64, err error)
}
