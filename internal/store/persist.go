package store

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/souhail747/luxe/internal/storage"
	apperrors "github.com/souhail747/luxe/pkg/errors"
)

const persistTimeout = 5 * time.Second

// Load reads the snapshot stored under key. A missing key, an unreadable
// backend or a corrupt blob all yield the zero value; the last two are
// logged. Load never fails.
func Load[T any](ctx context.Context, st storage.Storage, key string, logger *slog.Logger) T {
	var zero T

	raw, err := st.Get(ctx, key)
	if errors.Is(err, apperrors.ErrNotFound) {
		rehydrateTotal.WithLabelValues(key, "empty").Inc()
		return zero
	}
	if err != nil {
		logger.WarnContext(ctx, "storage unreadable, starting empty",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		rehydrateTotal.WithLabelValues(key, "error").Inc()
		return zero
	}

	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.WarnContext(ctx, "corrupt snapshot, starting empty",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		rehydrateTotal.WithLabelValues(key, "corrupt").Inc()
		return zero
	}

	rehydrateTotal.WithLabelValues(key, "restored").Inc()
	return v
}

// Persister writes every change of one store to storage under a fixed key.
// Writes are best effort: failures are logged and counted, never returned.
// A change older than the last written revision is dropped so concurrent
// mutations cannot leave a stale snapshot behind.
type Persister[T any] struct {
	storage storage.Storage
	key     string
	logger  *slog.Logger

	mu      sync.Mutex
	written uint64
}

// Persist subscribes a Persister for key to src and returns it along with
// the unsubscribe func.
func Persist[T any](src Observable[T], st storage.Storage, key string, logger *slog.Logger) (*Persister[T], func()) {
	p := &Persister[T]{storage: st, key: key, logger: logger}
	return p, src.Subscribe(p.Write)
}

// Write stores c.State unless a newer revision has already been written.
func (p *Persister[T]) Write(ctx context.Context, c Change[T]) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if c.Revision <= p.written {
		return
	}

	raw, err := json.Marshal(c.State)
	if err != nil {
		p.fail(ctx, c, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()

	if err := p.storage.Set(ctx, p.key, raw); err != nil {
		p.fail(ctx, c, err)
		return
	}
	p.written = c.Revision
	persistWritesTotal.WithLabelValues(p.key, "ok").Inc()
}

// Revision is the last revision successfully written.
func (p *Persister[T]) Revision() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.written
}

func (p *Persister[T]) fail(ctx context.Context, c Change[T], err error) {
	persistWritesTotal.WithLabelValues(p.key, "error").Inc()
	p.logger.WarnContext(ctx, "persist snapshot failed",
		slog.String("key", p.key),
		slog.Uint64("revision", c.Revision),
		slog.String("action", string(c.Action)),
		slog.String("error", err.Error()),
	)
}
