//go:build !linux
// +build !linux

package wireless_host

import (
	"errors"

	"github.com/OpenTollGate/tollgate-wifi-monitor/src/wifi_monitor"
)

var errNetlinkUnsupported = errors.New("netlink link monitoring is only available on Linux")

// NetlinkCapabilityService is a stub for non-Linux systems
type NetlinkCapabilityService struct {
	iface string
}

// NewNetlinkCapabilityService creates a stub service for non-Linux systems
func NewNetlinkCapabilityService(iface string) *NetlinkCapabilityService {
	logger.Warn("Using stub capability service - netlink functionality only available on Linux")
	return &NetlinkCapabilityService{iface: iface}
}

// RegisterCallback always fails on non-Linux systems
func (s *NetlinkCapabilityService) RegisterCallback(handler wifi_monitor.CapabilityHandler) error {
	return errNetlinkUnsupported
}

// UnregisterCallback is a no-op on non-Linux systems
func (s *NetlinkCapabilityService) UnregisterCallback(handler wifi_monitor.CapabilityHandler) error {
	return nil
}

var _ wifi_monitor.CapabilityService = (*NetlinkCapabilityService)(nil)
