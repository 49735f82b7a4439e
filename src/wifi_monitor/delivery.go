package wifi_monitor

import (
	"fmt"
	"sync"

	"github.com/ef-ds/deque"
	"github.com/sirupsen/logrus"
)

// delivery hands statuses to one observer on its own goroutine, in the order
// they were enqueued. Enqueue never blocks.
type delivery struct {
	id       string
	observer Observer
	log      *logrus.Entry

	mu     sync.Mutex
	queue  deque.Deque
	closed bool

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func newDelivery(id string, observer Observer, log *logrus.Entry) *delivery {
	return &delivery{
		id:       id,
		observer: observer,
		log:      log.WithField("subscription", id),
		wake:     make(chan struct{}, 1),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (d *delivery) enqueue(status Status) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.queue.PushBack(status)
	d.mu.Unlock()

	select {
	case d.wake <- struct{}{}:
	default:
	}
}

func (d *delivery) start() {
	go d.run()
}

// close drops anything still queued. A callback already running may finish.
func (d *delivery) close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.closed = true
	d.queue.Init()
	close(d.stop)
}

func (d *delivery) run() {
	defer close(d.done)
	for {
		status, ok, closed := d.next()
		if closed {
			return
		}
		if !ok {
			select {
			case <-d.wake:
			case <-d.stop:
				return
			}
			continue
		}
		d.deliver(status)
	}
}

func (d *delivery) next() (Status, bool, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return Status{}, false, true
	}
	v, ok := d.queue.PopFront()
	if !ok {
		return Status{}, false, false
	}
	return v.(Status), true, false
}

func (d *delivery) deliver(status Status) {
	defer func() {
		if r := recover(); r != nil {
			d.log.WithError(newDeliveryError(d.id, fmt.Errorf("observer panic: %v", r))).
				WithField("status", status.String()).
				Error("Observer panicked while handling status")
		}
	}()

	if err := d.observer.OnStatus(status); err != nil {
		d.log.WithError(newDeliveryError(d.id, err)).
			WithField("status", status.String()).
			Warn("Observer failed to handle status")
	}
}
