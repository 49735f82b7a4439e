package wireless_host

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os/exec"
	"sync"

	"github.com/OpenTollGate/tollgate-wifi-monitor/src/wifi_monitor"
	"github.com/sirupsen/logrus"
)

// UbusReceiverService delivers ubus broadcast events to receivers. Every
// registration runs its own `ubus listen` process.
type UbusReceiverService struct {
	ubusPath string

	mu        sync.Mutex
	listeners map[wifi_monitor.EventReceiver]*ubusListener
}

type ubusListener struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// NewUbusReceiverService creates a receiver service using the ubus binary at ubusPath.
func NewUbusReceiverService(ubusPath string) *UbusReceiverService {
	if ubusPath == "" {
		ubusPath = "ubus"
	}
	return &UbusReceiverService{
		ubusPath:  ubusPath,
		listeners: make(map[wifi_monitor.EventReceiver]*ubusListener),
	}
}

// RegisterReceiver starts listening for topics and calls receiver.OnReceive
// for every matching event.
func (s *UbusReceiverService) RegisterReceiver(receiver wifi_monitor.EventReceiver, topics ...string) error {
	if len(topics) == 0 {
		return fmt.Errorf("no topics to listen on")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.listeners[receiver]; exists {
		return fmt.Errorf("event receiver is already registered")
	}

	ctx, cancel := context.WithCancel(context.Background())
	args := append([]string{"listen"}, topics...)
	cmd := exec.CommandContext(ctx, s.ubusPath, args...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return fmt.Errorf("failed to open ubus output: %w", err)
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return fmt.Errorf("failed to start ubus listen: %w", err)
	}

	listener := &ubusListener{cancel: cancel, done: make(chan struct{})}
	s.listeners[receiver] = listener

	go func() {
		defer close(listener.done)
		log := logger.WithFields(logrus.Fields{"topics": topics, "ubus_path": s.ubusPath})

		if err := dispatchUbusEvents(stdout, topics, receiver); err != nil && ctx.Err() == nil {
			log.WithError(err).Warn("Failed to read ubus events")
		}
		waitErr := cmd.Wait()
		if ctx.Err() != nil {
			return
		}
		// Still registered but the listener is gone, so no further events arrive.
		log.WithError(waitErr).Error("ubus listen exited unexpectedly, no longer receiving events")
	}()

	logger.WithField("topics", topics).Info("Listening for ubus events")
	return nil
}

// UnregisterReceiver stops the listener and waits for it to exit.
func (s *UbusReceiverService) UnregisterReceiver(receiver wifi_monitor.EventReceiver) error {
	s.mu.Lock()
	listener, exists := s.listeners[receiver]
	delete(s.listeners, receiver)
	s.mu.Unlock()

	if !exists {
		return nil
	}

	listener.cancel()
	<-listener.done
	logger.Info("Stopped listening for ubus events")
	return nil
}

// dispatchUbusEvents decodes the object stream written by `ubus listen`,
// where each event looks like {"network.interface":{"action":"ifup",...}},
// and calls receiver once per event whose topic is in topics.
func dispatchUbusEvents(r io.Reader, topics []string, receiver wifi_monitor.EventReceiver) error {
	wanted := make(map[string]bool, len(topics))
	for _, topic := range topics {
		wanted[topic] = true
	}

	decoder := json.NewDecoder(bufio.NewReader(r))
	for {
		var event map[string]json.RawMessage
		if err := decoder.Decode(&event); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to decode ubus event: %w", err)
		}

		for topic := range event {
			if wanted[topic] {
				receiver.OnReceive(topic)
			}
		}
	}
}

var _ wifi_monitor.ReceiverService = (*UbusReceiverService)(nil)
