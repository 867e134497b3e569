// Package s3 — альтернативный драйвер хранилища блобов поверх S3/MinIO.
// Включается через STORAGE_DRIVER=s3; ссылки на файлы те же, что у fs-драйвера.
package s3

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/Gautamshailendra50/video-stream-app/internal/domain"
	"github.com/Gautamshailendra50/video-stream-app/internal/infra/storage/httprange"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	UseSSL    bool
	PathStyle bool
}

type Storage struct {
	logger *log.Logger
	cl     *minio.Client
	bucket string
}

func New(ctx context.Context, cfg Config, logger *log.Logger) (*Storage, error) {
	opts := &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	}
	if cfg.PathStyle {
		opts.BucketLookup = minio.BucketLookupPath
	}
	cl, err := minio.New(cfg.Endpoint, opts)
	if err != nil {
		return nil, err
	}
	return &Storage{cl: cl, bucket: cfg.Bucket, logger: logger}, nil
}

// Put загружает поток под новым ключом (схема имён общая с fs-драйвером).
func (s *Storage) Put(ctx context.Context, r io.Reader, hintName string) (domain.BlobPutResult, error) {
	name := domain.NewBlobRef(hintName)
	info, err := s.cl.PutObject(ctx, s.bucket, name, r, -1, minio.PutObjectOptions{
		ContentType: "video/mp4",
	})
	if err != nil {
		return domain.BlobPutResult{}, fmt.Errorf("put object: %w", err)
	}
	s.logger.Printf("PUT %s (%d bytes)", name, info.Size)
	return domain.BlobPutResult{FileName: name, Size: info.Size}, nil
}

func (s *Storage) Exists(ctx context.Context, fileName string) bool {
	if !domain.ValidBlobRef(fileName) {
		return false
	}
	_, err := s.cl.StatObject(ctx, s.bucket, fileName, minio.StatObjectOptions{})
	return err == nil
}

// Delete идемпотентен: RemoveObject на отсутствующем ключе в S3 — успех.
func (s *Storage) Delete(ctx context.Context, fileName string) error {
	if !domain.ValidBlobRef(fileName) {
		return fmt.Errorf("%w: bad blob ref %q", domain.ErrBadParams, fileName)
	}
	if err := s.cl.RemoveObject(ctx, s.bucket, fileName, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	s.logger.Printf("DELETE %s", fileName)
	return nil
}

// Open: HEAD за размером, затем GetObject с SetRange (границы включающие).
func (s *Storage) Open(ctx context.Context, fileName, rangeHeader string) (io.ReadCloser, int64, string, int64, error) {
	if !domain.ValidBlobRef(fileName) {
		return nil, 0, "", 0, domain.ErrNotFound
	}

	info, err := s.cl.StatObject(ctx, s.bucket, fileName, minio.StatObjectOptions{})
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.StatusCode == 404 {
			return nil, 0, "", 0, domain.ErrNotFound
		}
		return nil, 0, "", 0, fmt.Errorf("stat object: %w", err)
	}
	totalSize := info.Size

	start, end, useRange, err := httprange.Parse(rangeHeader, totalSize)
	if err != nil {
		return nil, 0, "", 0, fmt.Errorf("%w: %v", domain.ErrBadRange, err)
	}

	opts := minio.GetObjectOptions{}
	contentLen := totalSize
	contentRange := ""
	if useRange {
		if e := opts.SetRange(start, end); e != nil {
			return nil, 0, "", 0, fmt.Errorf("%w: %v", domain.ErrBadRange, e)
		}
		contentLen = end - start + 1
		contentRange = fmt.Sprintf("bytes %d-%d/%d", start, end, totalSize)
	}

	obj, err := s.cl.GetObject(ctx, s.bucket, fileName, opts)
	if err != nil {
		return nil, 0, "", 0, fmt.Errorf("get object: %w", err)
	}
	return obj, contentLen, contentRange, totalSize, nil
}

func (s *Storage) Ping(ctx context.Context) error {
	ok, err := s.cl.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("bucket %q does not exist", s.bucket)
	}
	return nil
}
