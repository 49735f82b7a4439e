package wifi_monitor

import (
	"fmt"
	"sync"
)

// CapabilitySource registers one capability-change callback with the host's
// connectivity service for the wireless transport.
type CapabilitySource struct {
	service CapabilityService
	manager ConnectionManager

	mu      sync.Mutex
	handler *capabilityHandler
}

// NewCapabilitySource creates a source backed by capability callbacks.
func NewCapabilitySource(service CapabilityService, manager ConnectionManager) *CapabilitySource {
	return &CapabilitySource{
		service: service,
		manager: manager,
	}
}

// Start registers the callback. It fails if the source is already started.
func (s *CapabilitySource) Start(emit EmitFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handler != nil {
		return ErrSourceAlreadyStarted
	}

	handler := &capabilityHandler{manager: s.manager, emit: emit}
	if err := s.service.RegisterCallback(handler); err != nil {
		return fmt.Errorf("failed to register capability callback: %w", err)
	}
	s.handler = handler
	logger.Debug("Capability callback registered")
	return nil
}

// Stop unregisters the callback. Calling Stop on a stopped source is a no-op.
func (s *CapabilitySource) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.handler == nil {
		return nil
	}

	handler := s.handler
	s.handler = nil
	if err := s.service.UnregisterCallback(handler); err != nil {
		return fmt.Errorf("failed to unregister capability callback: %w", err)
	}
	logger.Debug("Capability callback unregistered")
	return nil
}

type capabilityHandler struct {
	manager ConnectionManager
	emit    EmitFunc
}

func (h *capabilityHandler) OnCapabilitiesChanged(caps Capabilities) {
	state := h.manager.CurrentRawState()

	conn := caps.Connection
	if conn == nil && state == RawStateEnabled {
		conn = h.manager.CurrentConnectionInfo()
	}

	h.emit(RawSignal{RawState: state, Connection: conn})
}

// Ensure CapabilitySource implements Source
var _ Source = (*CapabilitySource)(nil)
