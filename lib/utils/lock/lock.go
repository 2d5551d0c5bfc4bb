package lock

import (
	"context"
	"fmt"
	"sync"
	"time"
)

var (
	lockMap sync.Map
)

const pollInterval = 20 * time.Millisecond

// Key - ключ блокировки сущности
func Key(entity, id string) string {
	return fmt.Sprintf("%s:%s", entity, id)
}

// WithDelay выполняет safeCode, удерживая блокировку по ключу.
// Если блокировку не удалось получить за wait или контекст завершился, safeCode не вызывается и success=false
func WithDelay(ctx context.Context, key string, wait time.Duration, safeCode func() error) (success bool, err error) {
	isTimeout := time.After(wait)
	for {
		if _, loaded := lockMap.LoadOrStore(key, true); !loaded {
			break
		}
		select {
		case <-isTimeout:
			return false, nil
		case <-ctx.Done():
			return false, nil
		case <-time.After(pollInterval):
		}
	}
	defer lockMap.Delete(key)
	return true, safeCode()
}
