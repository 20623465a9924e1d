package realtime

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Channel es el canal que emiten los triggers de profiles y posts (ver db/schema.sql).
const Channel = "personality_inputs"

// SyncFunc recalcula la personalidad de un usuario tras un cambio de intereses.
type SyncFunc func(ctx context.Context, userID string) error

// Source abre suscripciones al canal de notificaciones.
type Source interface {
	Subscribe(ctx context.Context) (Subscription, error)
}

// Subscription entrega payloads en orden de llegada.
type Subscription interface {
	Next(ctx context.Context) (string, error)
	Close()
}

// PgSource escucha con LISTEN sobre una conexión dedicada del pool.
type PgSource struct {
	pool    *pgxpool.Pool
	channel string
}

func NewPgSource(pool *pgxpool.Pool) *PgSource {
	return &PgSource{pool: pool, channel: Channel}
}

func (s *PgSource) Subscribe(ctx context.Context) (Subscription, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{s.channel}.Sanitize()); err != nil {
		conn.Release()
		return nil, err
	}
	return &pgSubscription{conn: conn}, nil
}

type pgSubscription struct {
	conn *pgxpool.Conn
}

func (s *pgSubscription) Next(ctx context.Context) (string, error) {
	n, err := s.conn.Conn().WaitForNotification(ctx)
	if err != nil {
		return "", err
	}
	return n.Payload, nil
}

func (s *pgSubscription) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, _ = s.conn.Exec(ctx, "UNLISTEN *")
	s.conn.Release()
}

// Listener consume notificaciones y dispara SyncFunc por cada usuario afectado.
// Se reconecta con backoff exponencial si la suscripción se cae.
type Listener struct {
	source      Source
	sync        SyncFunc
	logger      *zap.Logger
	syncTimeout time.Duration
	minBackoff  time.Duration
	maxBackoff  time.Duration
}

func NewListener(source Source, sync SyncFunc, logger *zap.Logger) *Listener {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Listener{
		source:      source,
		sync:        sync,
		logger:      logger,
		syncTimeout: 10 * time.Second,
		minBackoff:  500 * time.Millisecond,
		maxBackoff:  30 * time.Second,
	}
}

// Run bloquea hasta que ctx se cancela.
func (l *Listener) Run(ctx context.Context) error {
	backoff := l.minBackoff
	for {
		sub, err := l.source.Subscribe(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			l.logger.Warn("realtime subscribe failed", zap.Error(err), zap.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return nil
			}
			backoff = min(backoff*2, l.maxBackoff)
			continue
		}

		l.logger.Info("realtime listener subscribed", zap.String("channel", Channel))
		backoff = l.minBackoff
		err = l.consume(ctx, sub)
		sub.Close()
		if ctx.Err() != nil {
			return nil
		}
		l.logger.Warn("realtime subscription lost", zap.Error(err), zap.Duration("retry_in", backoff))
		if !sleep(ctx, backoff) {
			return nil
		}
	}
}

func (l *Listener) consume(ctx context.Context, sub Subscription) error {
	for {
		payload, err := sub.Next(ctx)
		if err != nil {
			return err
		}
		l.handle(ctx, payload)
	}
}

func (l *Listener) handle(ctx context.Context, payload string) {
	userID := strings.TrimSpace(payload)
	if userID == "" {
		l.logger.Warn("empty realtime payload")
		return
	}

	syncCtx, cancel := context.WithTimeout(ctx, l.syncTimeout)
	defer cancel()
	start := time.Now()
	if err := l.sync(syncCtx, userID); err != nil {
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return
		}
		l.logger.Error("realtime sync failed", zap.String("user_id", userID), zap.Error(err))
		return
	}
	l.logger.Debug("realtime sync done", zap.String("user_id", userID), zap.Duration("latency", time.Since(start)))
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
