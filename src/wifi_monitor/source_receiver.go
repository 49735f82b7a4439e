package wifi_monitor

import (
	"fmt"
	"sync"
)

// ReceiverTopics are the two state-change topics the receiver strategy listens on.
var ReceiverTopics = []string{TopicWirelessState, TopicNetworkState}

// ReceiverSource registers one event receiver for the wireless and network
// state topics and queries the connection manager on every notification.
type ReceiverSource struct {
	service ReceiverService
	manager ConnectionManager

	mu       sync.Mutex
	receiver *stateReceiver
}

// NewReceiverSource creates a source backed by broadcast topics.
func NewReceiverSource(service ReceiverService, manager ConnectionManager) *ReceiverSource {
	return &ReceiverSource{
		service: service,
		manager: manager,
	}
}

// Start registers the receiver. It fails if the source is already started.
func (s *ReceiverSource) Start(emit EmitFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.receiver != nil {
		return ErrSourceAlreadyStarted
	}

	receiver := &stateReceiver{manager: s.manager, emit: emit}
	if err := s.service.RegisterReceiver(receiver, ReceiverTopics...); err != nil {
		return fmt.Errorf("failed to register state receiver: %w", err)
	}
	s.receiver = receiver
	logger.WithField("topics", ReceiverTopics).Debug("State receiver registered")
	return nil
}

// Stop unregisters the receiver. Calling Stop on a stopped source is a no-op.
func (s *ReceiverSource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.receiver == nil {
		return nil
	}

	receiver := s.receiver
	s.receiver = nil
	if err := s.service.UnregisterReceiver(receiver); err != nil {
		return fmt.Errorf("failed to unregister state receiver: %w", err)
	}
	logger.Debug("State receiver unregistered")
	return nil
}

type stateReceiver struct {
	manager ConnectionManager
	emit    EmitFunc
}

func (r *stateReceiver) OnReceive(topic string) {
	state := r.manager.CurrentRawState()

	var conn *ConnectionInfo
	if state == RawStateEnabled {
		conn = r.manager.CurrentConnectionInfo()
	}

	r.emit(RawSignal{RawState: state, Connection: conn})
}

// Ensure ReceiverSource implements Source
var _ Source = (*ReceiverSource)(nil)
