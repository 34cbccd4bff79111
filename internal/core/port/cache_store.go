package port

import (
	"context"
	"time"
)

// CacheStorePort — хранилище ключ-значение с истечением по времени.
// Просроченность записи проверяется при Get; вытеснения по размеру нет.
type CacheStorePort interface {
	// Get возвращает значение по ключу. ok=false, если записи нет или она просрочена.
	Get(ctx context.Context, key string) (value any, ok bool)

	// Set сохраняет значение с заданным временем жизни.
	Set(ctx context.Context, key string, value any, ttl time.Duration)

	// RemoveAllMatchingPrefix удаляет все записи, чей ключ начинается с prefix.
	RemoveAllMatchingPrefix(ctx context.Context, prefix string)
}
