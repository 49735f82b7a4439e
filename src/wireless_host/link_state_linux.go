//go:build linux
// +build linux

package wireless_host

import (
	"errors"
	"net"

	"github.com/OpenTollGate/tollgate-wifi-monitor/src/wifi_monitor"
	"github.com/vishvananda/netlink"
)

// linkRawState reads the current link state of iface over rtnetlink.
// A missing interface means the radio is off; OpenWrt removes station
// interfaces when the radio is disabled.
func linkRawState(iface string) wifi_monitor.RawState {
	link, err := netlink.LinkByName(iface)
	if err != nil {
		var notFound netlink.LinkNotFoundError
		if errors.As(err, &notFound) {
			return wifi_monitor.RawStateDisabled
		}
		logger.WithError(err).WithField("interface", iface).Warn("Failed to read link state")
		return wifi_monitor.RawStateOther
	}

	attrs := link.Attrs()
	return rawStateForLink(attrs.Flags&net.FlagUp != 0, attrs.OperState.String())
}
