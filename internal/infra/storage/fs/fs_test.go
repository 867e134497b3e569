package fs

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"
	"testing"

	"github.com/Gautamshailendra50/video-stream-app/internal/domain"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := New(t.TempDir(), log.New(io.Discard, "", 0))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func mustPut(t *testing.T, s *Storage, content, hint string) domain.BlobPutResult {
	t.Helper()
	res, err := s.Put(context.Background(), strings.NewReader(content), hint)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}
	return res
}

func TestPutExistsDelete(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	res := mustPut(t, s, "hello video", "movie.mp4")
	if res.Size != int64(len("hello video")) {
		t.Fatalf("want size %d, got %d", len("hello video"), res.Size)
	}
	if !strings.HasSuffix(res.FileName, ".mp4") {
		t.Fatalf("extension not kept: %q", res.FileName)
	}
	if !domain.ValidBlobRef(res.FileName) {
		t.Fatalf("generated ref does not pass validation: %q", res.FileName)
	}
	if !s.Exists(ctx, res.FileName) {
		t.Fatal("blob must exist after Put")
	}

	if err := s.Delete(ctx, res.FileName); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if s.Exists(ctx, res.FileName) {
		t.Fatal("blob must be gone after Delete")
	}

	// повторное удаление — успех, а не ошибка
	if err := s.Delete(ctx, res.FileName); err != nil {
		t.Fatalf("second Delete must be a no-op, got %v", err)
	}
}

func TestPutUniqueNames(t *testing.T) {
	s := newTestStorage(t)

	a := mustPut(t, s, "a", "v.mp4")
	b := mustPut(t, s, "b", "v.mp4")
	if a.FileName == b.FileName {
		t.Fatalf("two uploads collided on name %q", a.FileName)
	}
}

func TestPutDropsSuspiciousExtension(t *testing.T) {
	s := newTestStorage(t)

	res := mustPut(t, s, "x", "weird.name/../../etc")
	if strings.ContainsAny(res.FileName, "/\\") {
		t.Fatalf("separator leaked into ref: %q", res.FileName)
	}
	if !domain.ValidBlobRef(res.FileName) {
		t.Fatalf("ref must stay valid: %q", res.FileName)
	}
}

func TestOpenFull(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	content := "0123456789abcdef"
	res := mustPut(t, s, content, "v.mp4")

	rc, contentLen, contentRange, totalSize, err := s.Open(ctx, res.FileName, "")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	if contentRange != "" {
		t.Fatalf("no range requested, got Content-Range %q", contentRange)
	}
	if contentLen != int64(len(content)) || totalSize != int64(len(content)) {
		t.Fatalf("want len=%d, got contentLen=%d totalSize=%d", len(content), contentLen, totalSize)
	}
	b, _ := io.ReadAll(rc)
	if string(b) != content {
		t.Fatalf("body mismatch: %q", b)
	}
}

func TestOpenRange(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	content := "0123456789abcdef"
	res := mustPut(t, s, content, "v.mp4")

	rc, contentLen, contentRange, totalSize, err := s.Open(ctx, res.FileName, "bytes=4-7")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer rc.Close()

	if contentLen != 4 {
		t.Fatalf("want chunk 4, got %d", contentLen)
	}
	if want := "bytes 4-7/16"; contentRange != want {
		t.Fatalf("want %q, got %q", want, contentRange)
	}
	if totalSize != 16 {
		t.Fatalf("want total 16, got %d", totalSize)
	}
	b, _ := io.ReadAll(rc)
	if string(b) != "4567" {
		t.Fatalf("want bytes 4567, got %q", b)
	}
}

func TestOpenErrors(t *testing.T) {
	s := newTestStorage(t)
	ctx := context.Background()

	if _, _, _, _, err := s.Open(ctx, "nope.mp4", ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("absent file: want ErrNotFound, got %v", err)
	}

	// переход по каталогам не должен доходить до файловой системы
	if _, _, _, _, err := s.Open(ctx, "../secret", ""); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("traversal ref: want ErrNotFound, got %v", err)
	}

	res := mustPut(t, s, "data", "v.mp4")
	if _, _, _, _, err := s.Open(ctx, res.FileName, "bytes=oops"); !errors.Is(err, domain.ErrBadRange) {
		t.Fatalf("malformed range: want ErrBadRange, got %v", err)
	}
}
