package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/Gautamshailendra50/video-stream-app/internal/domain"
	fsstorage "github.com/Gautamshailendra50/video-stream-app/internal/infra/storage/fs"
)

// ---- фейки для репозитория и кеша ----

type memRepo struct {
	mu     sync.Mutex
	seq    int
	items  map[domain.VideoID]domain.Video
	failOn string // имя операции, которая должна упасть
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[domain.VideoID]domain.Video{}}
}

func (m *memRepo) Close()                     {}
func (m *memRepo) Ping(context.Context) error { return nil }

func (m *memRepo) fail(op string) error {
	if m.failOn == op {
		return fmt.Errorf("%s: forced failure", op)
	}
	return nil
}

func (m *memRepo) CreateVideo(ctx context.Context, v domain.Video) (domain.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("create"); err != nil {
		return domain.Video{}, err
	}
	m.seq++
	v.ID = uuid.New()
	v.CreatedAt = time.Unix(int64(m.seq), 0)
	v.UpdatedAt = v.CreatedAt
	m.items[v.ID] = v
	return v, nil
}

func (m *memRepo) VideoByID(ctx context.Context, id domain.VideoID) (domain.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[id]
	if !ok {
		return domain.Video{}, domain.ErrNotFound
	}
	return v, nil
}

func (m *memRepo) UpdateVideo(ctx context.Context, v domain.Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("update"); err != nil {
		return err
	}
	old, ok := m.items[v.ID]
	if !ok {
		return domain.ErrNotFound
	}
	v.CreatedAt = old.CreatedAt
	m.items[v.ID] = v
	return nil
}

func (m *memRepo) DeleteVideo(ctx context.Context, id domain.VideoID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("delete"); err != nil {
		return err
	}
	if _, ok := m.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memRepo) VideosPage(ctx context.Context, offset, limit int) ([]domain.Video, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]domain.Video, 0, len(m.items))
	for _, v := range m.items {
		all = append(all, v)
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID.String() < all[j].ID.String()
	})
	total := int64(len(all))
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data[key], nil
}

func (c *memCache) Set(ctx context.Context, key string, val []byte, ttlSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = val
	return nil
}

func (c *memCache) Del(ctx context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.data, k)
	}
	return nil
}

func (c *memCache) Incr(ctx context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n, _ := strconv.ParseInt(string(c.data[key]), 10, 64)
	n++
	c.data[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

func (c *memCache) Ping(context.Context) error { return nil }
func (c *memCache) Close()                     {}

// ---- сборка сервиса ----

func newTestService(t *testing.T) (*Service, *memRepo, domain.BlobStorage) {
	t.Helper()
	storage, err := fsstorage.New(t.TempDir(), log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("fs storage: %v", err)
	}
	repo := newMemRepo()
	svc := New(log.New(io.Discard, "", 0), repo, storage, newMemCache(), 5, 0)
	return svc, repo, storage
}

// ---- тесты ----

func TestUploadThenList(t *testing.T) {
	svc, _, storage := newTestService(t)
	ctx := context.Background()

	v, err := svc.Upload(ctx, "T", strings.NewReader("content"), "clip.mp4", "video/mp4")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if v.Title != "T" {
		t.Fatalf("want title T, got %q", v.Title)
	}
	if !storage.Exists(ctx, v.FileName) {
		t.Fatal("blob must exist after upload")
	}

	page, err := svc.ListPage(ctx, 1)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if len(page.Videos) != 1 || page.Total != 1 || page.Pages != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page.Videos[0].Title != "T" || page.Videos[0].FileName != v.FileName {
		t.Fatalf("unexpected record: %+v", page.Videos[0])
	}
}

func TestUploadWithoutFile(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Upload(context.Background(), "T", nil, "", "")
	if !errors.Is(err, domain.ErrBadParams) {
		t.Fatalf("want ErrBadParams, got %v", err)
	}
}

func TestUploadTitleFallback(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	v, err := svc.Upload(ctx, "", strings.NewReader("x"), "holiday.mp4", "")
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if v.Title != "holiday.mp4" {
		t.Fatalf("want title from filename, got %q", v.Title)
	}
}

func TestUploadRecordFailureLeavesNoRecord(t *testing.T) {
	svc, repo, _ := newTestService(t)
	repo.failOn = "create"

	_, err := svc.Upload(context.Background(), "T", strings.NewReader("x"), "v.mp4", "")
	if err == nil {
		t.Fatal("want error when record create fails")
	}
	if len(repo.items) != 0 {
		t.Fatal("failed upload must not leave a record")
	}
}

func TestListPageValidationAndMath(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.ListPage(ctx, 0); !errors.Is(err, domain.ErrBadParams) {
		t.Fatalf("page 0: want ErrBadParams, got %v", err)
	}
	if _, err := svc.ListPage(ctx, -3); !errors.Is(err, domain.ErrBadParams) {
		t.Fatalf("negative page: want ErrBadParams, got %v", err)
	}

	for i := 0; i < 7; i++ {
		if _, err := svc.Upload(ctx, fmt.Sprintf("v%d", i), strings.NewReader("x"), "v.mp4", ""); err != nil {
			t.Fatalf("Upload %d: %v", i, err)
		}
	}

	// 7 записей при размере страницы 5: вторая страница — 2 записи, всего 2 страницы
	page, err := svc.ListPage(ctx, 2)
	if err != nil {
		t.Fatalf("ListPage(2): %v", err)
	}
	if len(page.Videos) != 2 {
		t.Fatalf("want 2 records on page 2, got %d", len(page.Videos))
	}
	if page.Total != 7 || page.Pages != 2 {
		t.Fatalf("want total=7 pages=2, got total=%d pages=%d", page.Total, page.Pages)
	}

	// пустая страница за пределами — не ошибка
	page, err = svc.ListPage(ctx, 3)
	if err != nil {
		t.Fatalf("ListPage(3): %v", err)
	}
	if len(page.Videos) != 0 {
		t.Fatalf("want empty page, got %d", len(page.Videos))
	}
}

func TestListPageCacheInvalidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Upload(ctx, "first", strings.NewReader("x"), "v.mp4", ""); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if p, _ := svc.ListPage(ctx, 1); p.Total != 1 {
		t.Fatalf("want total 1, got %d", p.Total)
	}

	// вторая загрузка сдвигает версию списка: закешированная страница не должна отдаться
	if _, err := svc.Upload(ctx, "second", strings.NewReader("y"), "v.mp4", ""); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	p, err := svc.ListPage(ctx, 1)
	if err != nil {
		t.Fatalf("ListPage: %v", err)
	}
	if p.Total != 2 || len(p.Videos) != 2 {
		t.Fatalf("stale page after mutation: %+v", p)
	}
	if p.Videos[0].Title != "second" {
		t.Fatalf("want newest first, got %q", p.Videos[0].Title)
	}
}

func TestUpdateTitleOnly(t *testing.T) {
	svc, _, storage := newTestService(t)
	ctx := context.Background()

	v, _ := svc.Upload(ctx, "old", strings.NewReader("x"), "v.mp4", "")

	got, err := svc.Update(ctx, v.ID, "new title", nil, "", "")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Title != "new title" {
		t.Fatalf("want new title, got %q", got.Title)
	}
	if got.FileName != v.FileName || !storage.Exists(ctx, v.FileName) {
		t.Fatal("title-only update must not touch the blob")
	}
}

func TestUpdateWithNewFile(t *testing.T) {
	svc, _, storage := newTestService(t)
	ctx := context.Background()

	v, _ := svc.Upload(ctx, "T", strings.NewReader("old content"), "v.mp4", "")
	oldRef := v.FileName

	got, err := svc.Update(ctx, v.ID, "", strings.NewReader("new content"), "v2.mp4", "")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.FileName == oldRef {
		t.Fatal("blob reference must change with a new file")
	}
	if storage.Exists(ctx, oldRef) {
		t.Fatal("old blob must be deleted")
	}
	rc, contentLen, _, _, err := storage.Open(ctx, got.FileName, "")
	if err != nil {
		t.Fatalf("Open new blob: %v", err)
	}
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	if string(b) != "new content" || contentLen != int64(len("new content")) {
		t.Fatalf("new blob content mismatch: %q", b)
	}
}

func TestUpdateNoop(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	v, _ := svc.Upload(ctx, "T", strings.NewReader("x"), "v.mp4", "")
	got, err := svc.Update(ctx, v.ID, "", nil, "", "")
	if err != nil {
		t.Fatalf("no-op update must succeed, got %v", err)
	}
	if got.Title != "T" || got.FileName != v.FileName {
		t.Fatalf("no-op update changed the record: %+v", got)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Update(context.Background(), uuid.New(), "x", nil, "", "")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	svc, repo, storage := newTestService(t)
	ctx := context.Background()

	v, _ := svc.Upload(ctx, "T", strings.NewReader("x"), "v.mp4", "")

	if err := svc.Delete(ctx, v.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if storage.Exists(ctx, v.FileName) {
		t.Fatal("blob must be gone after delete")
	}
	if len(repo.items) != 0 {
		t.Fatal("record must be gone after delete")
	}

	if err := svc.Delete(ctx, v.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("second delete: want ErrNotFound, got %v", err)
	}

	page, _ := svc.ListPage(ctx, 1)
	if page.Total != 0 {
		t.Fatalf("deleted record still listed: %+v", page)
	}
}

func TestDeleteTolerateMissingBlob(t *testing.T) {
	svc, _, storage := newTestService(t)
	ctx := context.Background()

	v, _ := svc.Upload(ctx, "T", strings.NewReader("x"), "v.mp4", "")

	// файл убрали руками — delete записи всё равно должен пройти
	if err := storage.Delete(ctx, v.FileName); err != nil {
		t.Fatalf("manual blob delete: %v", err)
	}
	if err := svc.Delete(ctx, v.ID); err != nil {
		t.Fatalf("Delete with absent blob: %v", err)
	}
}
