package notifications

import (
	"context"

	"skyward/tower/internal/logging"
)

// Handler consumes a published event payload. Handlers are independent:
// one failing never stops the fan-out, and no handler failure reaches
// the publisher.
type Handler func(ctx context.Context, payload any) error

// Dispatcher routes event kinds to an ordered list of handlers. Routes
// are registered once at startup; Publish is called by services strictly
// after their transaction commits, so a rolled-back booking never emits
// anything.
type Dispatcher struct {
	routes map[string][]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{routes: make(map[string][]Handler)}
}

// Register appends a handler to the route for kind.
func (d *Dispatcher) Register(kind string, h Handler) {
	d.routes[kind] = append(d.routes[kind], h)
}

// Publish fans payload out to every handler registered for kind.
// Unknown kinds are ignored. Handler errors are logged and swallowed;
// delivery guarantees live in the handlers themselves (queue retries).
func (d *Dispatcher) Publish(ctx context.Context, kind string, payload any) {
	handlers, ok := d.routes[kind]
	if !ok {
		return
	}

	for _, h := range handlers {
		if err := h(ctx, payload); err != nil {
			logging.Error("Notification handler failed",
				"event", kind,
				"error", err.Error(),
			)
		}
	}
}
