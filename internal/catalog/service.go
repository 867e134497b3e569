// Package catalog — оркестрация жизненного цикла записи каталога:
// согласованность между файлом в хранилище и строкой в БД.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"

	"github.com/Gautamshailendra50/video-stream-app/internal/domain"
)

type Service struct {
	Log     *log.Logger
	Videos  domain.VideosRepo
	Storage domain.BlobStorage
	Cache   domain.Cache

	PageSize int // записей на страницу (дефолт 5)
	ListTTL  int // секунд жизни закешированной страницы
}

func New(logger *log.Logger, repo domain.VideosRepo, storage domain.BlobStorage, cache domain.Cache, pageSize, listTTL int) *Service {
	if pageSize <= 0 {
		pageSize = 5
	}
	return &Service{
		Log:      logger,
		Videos:   repo,
		Storage:  storage,
		Cache:    cache,
		PageSize: pageSize,
		ListTTL:  listTTL,
	}
}

// Upload: сначала блоб, потом запись. При падении записи блоб может
// осиротеть — известная брешь, громко логируем и не маскируем ошибку.
func (s *Service) Upload(ctx context.Context, title string, file io.Reader, hintName, mime string) (domain.Video, error) {
	if file == nil {
		return domain.Video{}, fmt.Errorf("%w: no file uploaded", domain.ErrBadParams)
	}

	res, err := s.Storage.Put(ctx, file, hintName)
	if err != nil {
		return domain.Video{}, fmt.Errorf("store blob: %w", err)
	}

	if title == "" {
		title = hintName
	}
	if title == "" {
		title = "video"
	}
	if mime == "" {
		mime = "video/mp4"
	}

	v, err := s.Videos.CreateVideo(ctx, domain.Video{
		Title:     title,
		FileName:  res.FileName,
		MIME:      mime,
		SizeBytes: res.Size,
	})
	if err != nil {
		s.Log.Printf("upload: record create failed, orphaned blob %s: %v", res.FileName, err)
		return domain.Video{}, fmt.Errorf("create record: %w", err)
	}

	s.bumpListVersion(ctx)
	return v, nil
}

// Update: заголовок и/или файл, оба опциональны. Без обоих — no-op успех.
// Новый файл: старый блоб удаляем (отсутствие терпим), пишем новый, меняем ссылку.
func (s *Service) Update(ctx context.Context, id domain.VideoID, newTitle string, file io.Reader, hintName, mime string) (domain.Video, error) {
	v, err := s.Videos.VideoByID(ctx, id)
	if err != nil {
		return domain.Video{}, err
	}

	changed := false
	if newTitle != "" {
		v.Title = newTitle
		changed = true
	}

	if file != nil {
		if old := v.FileName; old != "" {
			if err := s.Storage.Delete(ctx, old); err != nil {
				// не смертельно: новая ссылка всё равно заменит старую
				s.Log.Printf("update %s: delete old blob %s: %v", id, old, err)
			}
		}
		res, err := s.Storage.Put(ctx, file, hintName)
		if err != nil {
			return domain.Video{}, fmt.Errorf("store blob: %w", err)
		}
		v.FileName = res.FileName
		v.SizeBytes = res.Size
		if mime != "" {
			v.MIME = mime
		}
		changed = true
	}

	if !changed {
		return v, nil
	}

	if err := s.Videos.UpdateVideo(ctx, v); err != nil {
		return domain.Video{}, fmt.Errorf("update record: %w", err)
	}
	s.bumpListVersion(ctx)
	return v, nil
}

// Delete: сначала блоб (отсутствие — успех, прочие ошибки наружу),
// затем запись. Падение между шагами оставит висячую ссылку — известная
// брешь исходного поведения, см. DESIGN.md.
func (s *Service) Delete(ctx context.Context, id domain.VideoID) error {
	v, err := s.Videos.VideoByID(ctx, id)
	if err != nil {
		return err
	}

	if v.FileName != "" {
		if err := s.Storage.Delete(ctx, v.FileName); err != nil {
			return fmt.Errorf("delete blob: %w", err)
		}
	}

	if err := s.Videos.DeleteVideo(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// гонка с параллельным delete: блоб уже убран, считаем успехом
			s.Log.Printf("delete %s: record already gone", id)
			return nil
		}
		return fmt.Errorf("delete record: %w", err)
	}

	s.bumpListVersion(ctx)
	return nil
}

// ListPage: страница каталога (нумерация с 1). Страницы кешируются под
// текущей версией списка; мутации сдвигают версию вместо явного DEL.
func (s *Service) ListPage(ctx context.Context, page int) (domain.VideoPage, error) {
	if page <= 0 {
		return domain.VideoPage{}, fmt.Errorf("%w: invalid page number", domain.ErrBadParams)
	}

	ver := s.listVersion(ctx)
	ckey := domain.CacheKeyVideosPage(ver, page)
	if b, err := s.Cache.Get(ctx, ckey); err == nil && len(b) > 0 {
		var cached domain.VideoPage
		if err := json.Unmarshal(b, &cached); err == nil {
			return cached, nil
		}
	}

	offset := (page - 1) * s.PageSize
	videos, total, err := s.Videos.VideosPage(ctx, offset, s.PageSize)
	if err != nil {
		return domain.VideoPage{}, fmt.Errorf("list page: %w", err)
	}
	if videos == nil {
		videos = []domain.Video{}
	}

	out := domain.VideoPage{
		Videos: videos,
		Total:  total,
		Pages:  int(math.Ceil(float64(total) / float64(s.PageSize))),
	}

	if buf, err := json.Marshal(out); err == nil {
		_ = s.Cache.Set(ctx, ckey, buf, s.ListTTL)
	}
	return out, nil
}

func (s *Service) listVersion(ctx context.Context) int64 {
	b, err := s.Cache.Get(ctx, domain.CacheKeyListVersion())
	if err != nil || len(b) == 0 {
		return 0
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func (s *Service) bumpListVersion(ctx context.Context) {
	if _, err := s.Cache.Incr(ctx, domain.CacheKeyListVersion()); err != nil {
		s.Log.Printf("bump list version: %v", err)
	}
}
