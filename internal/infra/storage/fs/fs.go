// Package fs — хранилище видеофайлов на локальном диске.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/Gautamshailendra50/video-stream-app/internal/domain"
	"github.com/Gautamshailendra50/video-stream-app/internal/infra/storage/httprange"
)

type Storage struct {
	logger *log.Logger
	root   string
}

// New создаёт каталог root, если его ещё нет (один раз на старте процесса).
func New(root string, logger *log.Logger) (*Storage, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", root, err)
	}
	logger.Printf("upload dir ready: %s", root)
	return &Storage{root: root, logger: logger}, nil
}

// Put пишет поток во временный файл и атомарно переименовывает.
func (s *Storage) Put(ctx context.Context, r io.Reader, hintName string) (domain.BlobPutResult, error) {
	name := domain.NewBlobRef(hintName)

	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return domain.BlobPutResult{}, fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()

	size, err := io.Copy(tmp, r)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = ctx.Err()
	}
	if err != nil {
		_ = os.Remove(tmpName)
		return domain.BlobPutResult{}, fmt.Errorf("write blob: %w", err)
	}

	final := filepath.Join(s.root, name)
	if err := os.Rename(tmpName, final); err != nil {
		_ = os.Remove(tmpName)
		return domain.BlobPutResult{}, fmt.Errorf("finalize blob: %w", err)
	}

	s.logger.Printf("PUT %s (%d bytes)", name, size)
	return domain.BlobPutResult{FileName: name, Size: size}, nil
}

func (s *Storage) Exists(ctx context.Context, fileName string) bool {
	if !domain.ValidBlobRef(fileName) {
		return false
	}
	_, err := os.Stat(filepath.Join(s.root, fileName))
	return err == nil
}

// Delete идемпотентен: отсутствующий файл — успех, только лог.
func (s *Storage) Delete(ctx context.Context, fileName string) error {
	if !domain.ValidBlobRef(fileName) {
		return fmt.Errorf("%w: bad blob ref %q", domain.ErrBadParams, fileName)
	}
	err := os.Remove(filepath.Join(s.root, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.logger.Printf("DELETE %s: already absent, skipping", fileName)
			return nil
		}
		return fmt.Errorf("remove blob: %w", err)
	}
	s.logger.Printf("DELETE %s", fileName)
	return nil
}

// Open открывает файл, позиционирует на начало диапазона и ограничивает чтение.
// Файл целиком в память не поднимается: дальше его копируют в ResponseWriter.
func (s *Storage) Open(ctx context.Context, fileName, rangeHeader string) (io.ReadCloser, int64, string, int64, error) {
	if !domain.ValidBlobRef(fileName) {
		return nil, 0, "", 0, domain.ErrNotFound
	}

	f, err := os.Open(filepath.Join(s.root, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, "", 0, domain.ErrNotFound
		}
		return nil, 0, "", 0, fmt.Errorf("open blob: %w", err)
	}

	st, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, 0, "", 0, fmt.Errorf("stat blob: %w", err)
	}
	totalSize := st.Size()

	start, end, useRange, err := httprange.Parse(rangeHeader, totalSize)
	if err != nil {
		_ = f.Close()
		return nil, 0, "", 0, fmt.Errorf("%w: %v", domain.ErrBadRange, err)
	}
	if !useRange {
		return f, totalSize, "", totalSize, nil
	}

	if _, err := f.Seek(start, io.SeekStart); err != nil {
		_ = f.Close()
		return nil, 0, "", 0, fmt.Errorf("seek blob: %w", err)
	}
	chunk := end - start + 1
	contentRange := fmt.Sprintf("bytes %d-%d/%d", start, end, totalSize)
	return &limitedFile{f: f, r: io.LimitReader(f, chunk)}, chunk, contentRange, totalSize, nil
}

// Ping для readiness: каталог загрузок должен существовать.
func (s *Storage) Ping(ctx context.Context) error {
	st, err := os.Stat(s.root)
	if err != nil {
		return err
	}
	if !st.IsDir() {
		return fmt.Errorf("%s is not a directory", s.root)
	}
	return nil
}

// limitedFile закрывает сам файл, а читает через LimitReader.
type limitedFile struct {
	f *os.File
	r io.Reader
}

func (lf *limitedFile) Read(p []byte) (int, error) { return lf.r.Read(p) }
func (lf *limitedFile) Close() error               { return lf.f.Close() }
