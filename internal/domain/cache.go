package domain

import (
	"context"
	"fmt"
)

// Ключи кеша — единое место, чтобы не расползались по коду.
// Страницы списка версионируются: любая мутация каталога делает Incr
// по CacheKeyListVersion, и старые страницы просто перестают читаться.
func CacheKeyListVersion() string { return "videos:ver" }
func CacheKeyVideosPage(version int64, page int) string {
	return fmt.Sprintf("videos:v%d:page:%d", version, page)
}

// Простой k/v интерфейс. Реализация — Redis.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	Del(ctx context.Context, keys ...string) error
	// Для инкрементируемых версий списков (выборочная инвалидация)
	Incr(ctx context.Context, key string) (int64, error)
	Ping(context.Context) error
	Close()
}
