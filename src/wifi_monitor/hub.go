package wifi_monitor

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// HubStats counts what happened to emitted signals.
type HubStats struct {
	Delivered  uint64
	Suppressed uint64
	Discarded  uint64
}

// Hub shares one Source among any number of observers. The source runs only
// while at least one subscription is held, and consecutive equal statuses are
// delivered once.
type Hub struct {
	source            Source
	permissionGranted bool
	log               *logrus.Entry

	// lifecycleMu serialises count transitions with source Start/Stop.
	lifecycleMu sync.Mutex
	active      int

	// stateMu guards everything the emit path touches. Start may emit
	// synchronously, so emit must never need lifecycleMu.
	stateMu    sync.Mutex
	live       bool
	generation uint64
	last       Status
	observers  map[string]*delivery

	delivered  atomic.Uint64
	suppressed atomic.Uint64
	discarded  atomic.Uint64
}

// NewHub creates a hub around source. permissionGranted is fixed for the hub's lifetime.
func NewHub(source Source, permissionGranted bool, log *logrus.Entry) *Hub {
	if log == nil {
		log = logger
	}
	return &Hub{
		source:            source,
		permissionGranted: permissionGranted,
		log:               log,
		last:              UnknownStatus,
		observers:         make(map[string]*delivery),
	}
}

// Subscribe registers observer. The first subscription starts the source and
// is seeded with UnknownStatus; later ones only see changes made after they join.
func (h *Hub) Subscribe(observer Observer) (*Subscription, error) {
	if observer == nil {
		return nil, errors.New("observer must not be nil")
	}

	id := uuid.NewString()
	d := newDelivery(id, observer, h.log)
	sub := &Subscription{id: id, hub: h, delivery: d}

	h.lifecycleMu.Lock()
	defer h.lifecycleMu.Unlock()

	if h.active > 0 {
		h.stateMu.Lock()
		h.observers[id] = d
		h.stateMu.Unlock()
		h.active++
		d.start()
		h.log.WithFields(logrus.Fields{"subscription": id, "active": h.active}).Debug("Observer subscribed")
		return sub, nil
	}

	// 0 -> 1: seed before starting so the seed precedes anything the source emits.
	h.stateMu.Lock()
	h.generation++
	generation := h.generation
	h.live = true
	h.last = UnknownStatus
	h.observers[id] = d
	d.enqueue(UnknownStatus)
	h.stateMu.Unlock()

	if err := h.source.Start(h.emitter(generation)); err != nil {
		h.stateMu.Lock()
		h.live = false
		delete(h.observers, id)
		h.stateMu.Unlock()
		d.close()
		h.log.WithError(err).Error("Failed to start source")
		return nil, newSourceError("start_failed", "failed to start source", err)
	}

	h.active = 1
	d.start()
	h.log.WithField("subscription", id).Info("Source started for first observer")
	return sub, nil
}

func (h *Hub) release(sub *Subscription) {
	h.lifecycleMu.Lock()
	defer h.lifecycleMu.Unlock()

	h.active--
	last := h.active == 0

	h.stateMu.Lock()
	delete(h.observers, sub.id)
	if last {
		h.live = false
		h.last = UnknownStatus
	}
	h.stateMu.Unlock()
	sub.delivery.close()

	if !last {
		h.log.WithFields(logrus.Fields{"subscription": sub.id, "active": h.active}).Debug("Observer released")
		return
	}

	if err := h.source.Stop(); err != nil {
		h.log.WithError(err).Warn("Failed to stop source cleanly")
		return
	}
	h.log.WithField("subscription", sub.id).Info("Source stopped after last observer left")
}

func (h *Hub) emitter(generation uint64) EmitFunc {
	return func(raw RawSignal) {
		status := Classify(raw, h.permissionGranted)

		h.stateMu.Lock()
		defer h.stateMu.Unlock()

		if !h.live || generation != h.generation {
			h.discarded.Inc()
			h.log.WithField("raw_state", raw.RawState).Debug("Discarding signal from a stopped source")
			return
		}
		if status == h.last {
			h.suppressed.Inc()
			return
		}

		h.last = status
		h.delivered.Inc()
		for _, d := range h.observers {
			d.enqueue(status)
		}
	}
}

// ActiveSubscribers returns the number of unreleased subscriptions.
func (h *Hub) ActiveSubscribers() int {
	h.lifecycleMu.Lock()
	defer h.lifecycleMu.Unlock()
	return h.active
}

// Last returns the most recently delivered status, or UnknownStatus while idle.
func (h *Hub) Last() Status {
	h.stateMu.Lock()
	defer h.stateMu.Unlock()
	return h.last
}

// Stats returns emission counters accumulated over the hub's lifetime.
func (h *Hub) Stats() HubStats {
	return HubStats{
		Delivered:  h.delivered.Load(),
		Suppressed: h.suppressed.Load(),
		Discarded:  h.discarded.Load(),
	}
}
