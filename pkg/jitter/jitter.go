// Package jitter предоставляет утилиты для добавления случайности в интервалы отступления (backoff),
// чтобы предотвратить эффект «буйного стада» (thundering herd) в распределённых системах.
package jitter

import (
	"math/rand"
	"sync"
	"time"
)

// DefaultJitter - стандартный коэффициент джиттера (50%)
const DefaultJitter = 0.5

var (
	globalRand = rand.New(rand.NewSource(time.Now().UnixNano()))
	randMutex  sync.Mutex
)

// Duration возвращает d, увеличенную на случайную величину из [0, d*jitterFactor].
func Duration(d time.Duration, jitterFactor float64) time.Duration {
	randMutex.Lock()
	extra := globalRand.Float64() * jitterFactor * float64(d)
	randMutex.Unlock()
	return d + time.Duration(extra)
}

// ExponentialBackoff удваивает base на каждой попытке (нумерация с нуля),
// ограничивает max и добавляет джиттер.
func ExponentialBackoff(base, max time.Duration, attempt int, jitterFactor float64) time.Duration {
	backoff := base
	for i := 0; i < attempt; i++ {
		backoff *= 2
		if backoff >= max {
			backoff = max
			break
		}
	}
	return Duration(backoff, jitterFactor)
}

// Sleep ждет backoff для попытки attempt или закрытия done.
// Возвращает false, если done закрылся раньше.
func Sleep(done <-chan struct{}, base, max time.Duration, attempt int) bool {
	t := time.NewTimer(ExponentialBackoff(base, max, attempt, DefaultJitter))
	defer t.Stop()

	select {
	case <-t.C:
		return true
	case <-done:
		return false
	}
}
