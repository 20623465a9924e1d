package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// UserLocker serializa las escrituras de personalidad de un mismo usuario.
// Lock bloquea hasta obtener el lock, agotar la espera (ErrLocked) o cancelar ctx.
type UserLocker interface {
	Lock(ctx context.Context, userID string) (func(), error)
}

// userSlot es el turno de un usuario; refs cuenta dueño más esperas y permite soltar la entrada.
type userSlot struct {
	ch   chan struct{}
	refs int
}

type memoryUserLocker struct {
	mu    sync.Mutex
	slots map[string]*userSlot
	wait  time.Duration
}

// NewMemoryUserLocker sirve para una sola instancia del proceso.
func NewMemoryUserLocker(wait time.Duration) UserLocker {
	if wait <= 0 {
		wait = 2 * time.Second
	}
	return &memoryUserLocker{
		slots: make(map[string]*userSlot),
		wait:  wait,
	}
}

func (l *memoryUserLocker) acquire(userID string) *userSlot {
	l.mu.Lock()
	defer l.mu.Unlock()
	s, ok := l.slots[userID]
	if !ok {
		s = &userSlot{ch: make(chan struct{}, 1)}
		l.slots[userID] = s
	}
	s.refs++
	return s
}

func (l *memoryUserLocker) release(userID string, s *userSlot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	s.refs--
	if s.refs == 0 && l.slots[userID] == s {
		delete(l.slots, userID)
	}
}

func (l *memoryUserLocker) Lock(ctx context.Context, userID string) (func(), error) {
	s := l.acquire(userID)
	timer := time.NewTimer(l.wait)
	defer timer.Stop()
	select {
	case s.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-s.ch
				l.release(userID, s)
			})
		}, nil
	case <-timer.C:
		l.release(userID, s)
		return nil, ErrLocked
	case <-ctx.Done():
		l.release(userID, s)
		return nil, ctx.Err()
	}
}

const redisUnlockScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

type redisUserLocker struct {
	client redis.Cmdable
	ttl    time.Duration
	wait   time.Duration
	retry  time.Duration
	prefix string
	logger *zap.Logger
}

// NewRedisUserLocker comparte el lock entre réplicas. Los errores de Redis dejan pasar
// la escritura (fail-open): un duplicado ocasional en el historial es tolerable.
func NewRedisUserLocker(client redis.Cmdable, ttl, wait time.Duration, logger *zap.Logger) UserLocker {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 15 * time.Second
	}
	if wait <= 0 {
		wait = 2 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &redisUserLocker{
		client: client,
		ttl:    ttl,
		wait:   wait,
		retry:  50 * time.Millisecond,
		prefix: "personality:lock:",
		logger: logger,
	}
}

func (l *redisUserLocker) Lock(ctx context.Context, userID string) (func(), error) {
	key := l.prefix + strings.TrimSpace(userID)
	token := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			l.logger.Warn("user lock unavailable, continuing unlocked", zap.String("user_id", userID), zap.Error(err))
			return func() {}, nil
		}
		if ok {
			return l.unlockFunc(key, token), nil
		}
		if time.Now().After(deadline) {
			return nil, ErrLocked
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(l.retry):
		}
	}
}

func (l *redisUserLocker) unlockFunc(key, token string) func() {
	var once sync.Once
	return func() {
		once.Do(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
			defer cancel()
			if err := l.client.Eval(ctx, redisUnlockScript, []string{key}, token).Err(); err != nil {
				l.logger.Warn("user unlock failed", zap.String("key", key), zap.Error(err))
			}
		})
	}
}
