package response

import (
	"context"
	"sync"
	"time"
)

type metaContextKey struct{}

// requestMeta accumulates per-request response metadata. Services record
// facts about how the response was produced through the context; the
// render helpers fold them into the envelope together with the elapsed
// processing time.
type requestMeta struct {
	start  time.Time
	mu     sync.Mutex
	values map[string]interface{}
}

// WithMeta attaches a fresh metadata accumulator to the context. The
// processing time reported later is measured from this call.
func WithMeta(ctx context.Context) context.Context {
	return context.WithValue(ctx, metaContextKey{}, &requestMeta{
		start:  time.Now(),
		values: make(map[string]interface{}),
	})
}

func metaFrom(ctx context.Context) *requestMeta {
	if ctx == nil {
		return nil
	}
	m, _ := ctx.Value(metaContextKey{}).(*requestMeta)
	return m
}

// SetCacheHit records whether the response was served from cache. A
// context without an accumulator makes this a no-op, so services can call
// it unconditionally.
func SetCacheHit(ctx context.Context, hit bool) {
	m := metaFrom(ctx)
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values["cache_hit"] = hit
}

// Meta returns the accumulated metadata plus the processing time so far,
// or nil when no accumulator is attached.
func Meta(ctx context.Context) map[string]interface{} {
	m := metaFrom(ctx)
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]interface{}, len(m.values)+1)
	for k, v := range m.values {
		out[k] = v
	}
	out["processing_time_ms"] = time.Since(m.start).Milliseconds()
	return out
}
