package wifi_monitor

import (
	"sync"

	"github.com/stretchr/testify/mock"
	"go.uber.org/atomic"
)

// MockConnectionManager is a mock implementation of ConnectionManager for testing
type MockConnectionManager struct {
	mock.Mock
}

func (m *MockConnectionManager) CurrentRawState() RawState {
	args := m.Called()
	return args.Get(0).(RawState)
}

func (m *MockConnectionManager) CurrentConnectionInfo() *ConnectionInfo {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*ConnectionInfo)
}

// MockCapabilityService is a mock implementation of CapabilityService for testing
type MockCapabilityService struct {
	mock.Mock
}

func (m *MockCapabilityService) RegisterCallback(handler CapabilityHandler) error {
	args := m.Called(handler)
	return args.Error(0)
}

func (m *MockCapabilityService) UnregisterCallback(handler CapabilityHandler) error {
	args := m.Called(handler)
	return args.Error(0)
}

// MockReceiverService is a mock implementation of ReceiverService for testing
type MockReceiverService struct {
	mock.Mock
}

func (m *MockReceiverService) RegisterReceiver(receiver EventReceiver, topics ...string) error {
	args := m.Called(receiver, topics)
	return args.Error(0)
}

func (m *MockReceiverService) UnregisterReceiver(receiver EventReceiver) error {
	args := m.Called(receiver)
	return args.Error(0)
}

// MockPermissionOracle is a mock implementation of PermissionOracle for testing
type MockPermissionOracle struct {
	mock.Mock
}

func (m *MockPermissionOracle) IsGranted(permission string) bool {
	args := m.Called(permission)
	return args.Bool(0)
}

type staticPlatform bool

func (p staticPlatform) SupportsCapabilityCallbacks() bool {
	return bool(p)
}

// MockHostContext is a mock implementation of HostContext for testing
type MockHostContext struct {
	mock.Mock
}

func (m *MockHostContext) Platform() Platform {
	args := m.Called()
	return args.Get(0).(Platform)
}

func (m *MockHostContext) ConnectionManager() (ConnectionManager, error) {
	args := m.Called()
	manager, _ := args.Get(0).(ConnectionManager)
	return manager, args.Error(1)
}

func (m *MockHostContext) PermissionOracle() (PermissionOracle, error) {
	args := m.Called()
	oracle, _ := args.Get(0).(PermissionOracle)
	return oracle, args.Error(1)
}

func (m *MockHostContext) CapabilityService() (CapabilityService, error) {
	args := m.Called()
	service, _ := args.Get(0).(CapabilityService)
	return service, args.Error(1)
}

func (m *MockHostContext) ReceiverService() (ReceiverService, error) {
	args := m.Called()
	service, _ := args.Get(0).(ReceiverService)
	return service, args.Error(1)
}

// fakeSource records lifecycle calls and lets tests emit signals.
type fakeSource struct {
	mu       sync.Mutex
	emit     EmitFunc
	startErr error
	onStart  func(EmitFunc)

	starts atomic.Int32
	stops  atomic.Int32
}

func (s *fakeSource) Start(emit EmitFunc) error {
	s.starts.Inc()
	if s.startErr != nil {
		return s.startErr
	}
	s.mu.Lock()
	s.emit = emit
	onStart := s.onStart
	s.mu.Unlock()
	if onStart != nil {
		onStart(emit)
	}
	return nil
}

func (s *fakeSource) Stop() error {
	s.stops.Inc()
	return nil
}

func (s *fakeSource) send(raw RawSignal) {
	s.mu.Lock()
	emit := s.emit
	s.mu.Unlock()
	if emit != nil {
		emit(raw)
	}
}

// recorder collects every status an observer receives.
type recorder struct {
	mu       sync.Mutex
	statuses []Status
}

func (r *recorder) OnStatus(status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, status)
	return nil
}

func (r *recorder) snapshot() []Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Status(nil), r.statuses...)
}

func (r *recorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.statuses)
}
