package wifi_monitor

import (
	"go.uber.org/atomic"
)

// Subscription is the handle returned by Subscribe. It owns one reference on
// the hub's source; Release gives it back.
type Subscription struct {
	id       string
	hub      *Hub
	delivery *delivery
	released atomic.Bool
}

// ID identifies the subscription in logs.
func (s *Subscription) ID() string {
	return s.id
}

// Release unregisters the observer. Releasing the last subscription stops the
// source before Release returns. Only the first call has any effect.
func (s *Subscription) Release() {
	if !s.released.CompareAndSwap(false, true) {
		return
	}
	s.hub.release(s)
}

// Released reports whether Release has been called.
func (s *Subscription) Released() bool {
	return s.released.Load()
}
