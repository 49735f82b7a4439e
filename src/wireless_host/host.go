// Package wireless_host binds the wifi monitor to a Linux/OpenWrt host:
// rtnetlink link notifications, ubus broadcasts, iw and process capabilities.
package wireless_host

import (
	"fmt"
	"sync"

	"github.com/OpenTollGate/tollgate-wifi-monitor/src/config_manager"
	"github.com/OpenTollGate/tollgate-wifi-monitor/src/wifi_monitor"
)

// Host implements wifi_monitor.HostContext for one wireless interface.
// Services are created on first use and shared afterwards.
type Host struct {
	config   config_manager.MonitorConfig
	platform *KernelPlatform

	mu         sync.Mutex
	manager    *IwConnectionManager
	oracle     *CapabilityPermissionOracle
	capability *NetlinkCapabilityService
	receiver   *UbusReceiverService
}

// NewHost creates a host context from the monitor configuration.
func NewHost(cfg config_manager.MonitorConfig) (*Host, error) {
	if cfg.Interface == "" {
		return nil, fmt.Errorf("no wireless interface configured")
	}

	platform, err := NewKernelPlatform(cfg.Strategy, cfg.CapabilityMinKernel)
	if err != nil {
		return nil, err
	}

	return &Host{config: cfg, platform: platform}, nil
}

func (h *Host) Platform() wifi_monitor.Platform {
	return h.platform
}

func (h *Host) ConnectionManager() (wifi_monitor.ConnectionManager, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.manager == nil {
		h.manager = NewIwConnectionManager(h.config.Interface, h.config.IwPath, nil)
	}
	return h.manager, nil
}

func (h *Host) PermissionOracle() (wifi_monitor.PermissionOracle, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.oracle == nil {
		oracle, err := NewCapabilityPermissionOracle()
		if err != nil {
			return nil, err
		}
		h.oracle = oracle
	}
	return h.oracle, nil
}

func (h *Host) CapabilityService() (wifi_monitor.CapabilityService, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.capability == nil {
		h.capability = NewNetlinkCapabilityService(h.config.Interface)
	}
	return h.capability, nil
}

func (h *Host) ReceiverService() (wifi_monitor.ReceiverService, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.receiver == nil {
		h.receiver = NewUbusReceiverService(h.config.UbusPath)
	}
	return h.receiver, nil
}

var _ wifi_monitor.HostContext = (*Host)(nil)
