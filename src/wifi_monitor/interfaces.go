// Package wifi_monitor defines interfaces for dependency injection.
package wifi_monitor

// PermissionConnectionDetails is the permission that allows reading SSID, BSSID and RSSI.
const PermissionConnectionDetails = "CAP_NET_ADMIN"

// Topics the receiver strategy listens on.
const (
	TopicWirelessState = "network.wireless"
	TopicNetworkState  = "network.interface"
)

// EmitFunc receives raw signals from a Source. Implementations must return
// without blocking; they are called on host-owned goroutines.
type EmitFunc func(RawSignal)

// Source produces raw signals from the host until stopped.
type Source interface {
	Start(emit EmitFunc) error
	Stop() error
}

// ConnectionManager answers point-in-time queries about the wireless radio.
type ConnectionManager interface {
	CurrentRawState() RawState
	CurrentConnectionInfo() *ConnectionInfo
}

// Capabilities is what the host reports when the wireless transport changes.
// Connection is nil when the notification does not embed a descriptor.
type Capabilities struct {
	Interface  string
	Connection *ConnectionInfo
}

// CapabilityHandler is notified by a CapabilityService.
type CapabilityHandler interface {
	OnCapabilitiesChanged(caps Capabilities)
}

// CapabilityService delivers capability-change callbacks for the wireless transport.
type CapabilityService interface {
	RegisterCallback(handler CapabilityHandler) error
	UnregisterCallback(handler CapabilityHandler) error
}

// EventReceiver is notified by a ReceiverService.
type EventReceiver interface {
	OnReceive(topic string)
}

// ReceiverService delivers broadcast notifications for named topics.
type ReceiverService interface {
	RegisterReceiver(receiver EventReceiver, topics ...string) error
	UnregisterReceiver(receiver EventReceiver) error
}

// PermissionOracle reports whether a permission is held by this process.
type PermissionOracle interface {
	IsGranted(permission string) bool
}

// Platform describes static host capabilities.
type Platform interface {
	SupportsCapabilityCallbacks() bool
}

// HostContext resolves default collaborators for the Builder.
type HostContext interface {
	Platform() Platform
	ConnectionManager() (ConnectionManager, error)
	PermissionOracle() (PermissionOracle, error)
	CapabilityService() (CapabilityService, error)
	ReceiverService() (ReceiverService, error)
}

// Observer receives classified statuses from a Monitor.
type Observer interface {
	OnStatus(status Status) error
}

// ObserverFunc adapts a plain function to an Observer.
type ObserverFunc func(Status)

// OnStatus calls f.
func (f ObserverFunc) OnStatus(status Status) error {
	f(status)
	return nil
}
