//go:build !linux
// +build !linux

package wireless_host

import (
	"github.com/OpenTollGate/tollgate-wifi-monitor/src/wifi_monitor"
)

// linkRawState is a stub for non-Linux systems
func linkRawState(iface string) wifi_monitor.RawState {
	return wifi_monitor.RawStateOther
}
