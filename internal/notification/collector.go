package notification

import (
	"context"
	"sync"
)

type collectorKey struct{}

// Collector gathers the notifications raised while serving one call,
// so a handler can hand them back to the UI with its response.
type Collector struct {
	mu    sync.Mutex
	items []Notification
}

// WithCollector returns a context carrying a fresh Collector.
func WithCollector(ctx context.Context) (context.Context, *Collector) {
	c := &Collector{}
	return context.WithValue(ctx, collectorKey{}, c), c
}

func (c *Collector) add(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, n)
}

// Notifications returns what was collected so far.
func (c *Collector) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

// ContextNotifier delivers to the Collector carried by ctx, if any.
type ContextNotifier struct{}

func (ContextNotifier) Notify(ctx context.Context, n Notification) {
	if c, ok := ctx.Value(collectorKey{}).(*Collector); ok {
		c.add(n)
	}
}
