package wireless_host

import (
	"github.com/OpenTollGate/tollgate-wifi-monitor/src/wifi_monitor"
)

// rawStateForLink maps administrative and RFC 2863 operational link state to
// a radio state. operState uses the names from netlink.LinkOperState.String.
func rawStateForLink(adminUp bool, operState string) wifi_monitor.RawState {
	if !adminUp {
		return wifi_monitor.RawStateDisabled
	}

	switch operState {
	case "up":
		return wifi_monitor.RawStateEnabled
	case "dormant", "lower-layer-down", "down":
		// Radio is up but not yet associated.
		return wifi_monitor.RawStateEnabling
	case "not-present":
		return wifi_monitor.RawStateDisabled
	default:
		return wifi_monitor.RawStateOther
	}
}
