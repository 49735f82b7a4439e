package wireless_host

import (
	"bufio"
	"bytes"
	"os/exec"
	"strconv"
	"strings"

	"github.com/OpenTollGate/tollgate-wifi-monitor/src/wifi_monitor"
)

// CommandRunner runs an external program and returns its standard output.
type CommandRunner func(name string, args ...string) ([]byte, error)

// ExecRunner runs commands with os/exec.
func ExecRunner(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

// IwConnectionManager reads the radio state from the kernel and the current
// association from `iw dev <iface> link`.
type IwConnectionManager struct {
	iface  string
	iwPath string
	run    CommandRunner

	rawState func(iface string) wifi_monitor.RawState
}

// NewIwConnectionManager creates a connection manager for iface.
func NewIwConnectionManager(iface, iwPath string, run CommandRunner) *IwConnectionManager {
	if iwPath == "" {
		iwPath = "iw"
	}
	if run == nil {
		run = ExecRunner
	}
	return &IwConnectionManager{
		iface:    iface,
		iwPath:   iwPath,
		run:      run,
		rawState: linkRawState,
	}
}

// CurrentRawState returns the radio state of the interface.
func (m *IwConnectionManager) CurrentRawState() wifi_monitor.RawState {
	return m.rawState(m.iface)
}

// CurrentConnectionInfo returns the current association, or nil if the
// interface is not associated or iw fails.
func (m *IwConnectionManager) CurrentConnectionInfo() *wifi_monitor.ConnectionInfo {
	output, err := m.run(m.iwPath, "dev", m.iface, "link")
	if err != nil {
		logger.WithError(err).WithField("interface", m.iface).Debug("iw link query failed")
		return nil
	}
	return parseIwLink(output)
}

// parseIwLink parses the output of `iw dev <iface> link`:
//
//	Connected to aa:bb:cc:dd:ee:ff (on wlan0)
//		SSID: MyNetwork
//		freq: 5180
//		signal: -52 dBm
func parseIwLink(output []byte) *wifi_monitor.ConnectionInfo {
	scanner := bufio.NewScanner(bytes.NewReader(output))

	var info *wifi_monitor.ConnectionInfo
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "Connected to ") {
			info = &wifi_monitor.ConnectionInfo{}
			fields := strings.Fields(strings.TrimPrefix(line, "Connected to "))
			if len(fields) > 0 {
				info.BSSID = wifi_monitor.SomeString(strings.ToLower(fields[0]))
			}
			continue
		}
		if info == nil {
			continue
		}

		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)

		switch key {
		case "SSID":
			info.SSID = wifi_monitor.SomeString(value)
		case "freq":
			// Newer iw releases print fractional MHz, e.g. "5180.0".
			if mhz, err := strconv.ParseFloat(value, 64); err == nil {
				info.FrequencyMHz = wifi_monitor.SomeInt(int(mhz))
			}
		case "signal":
			fields := strings.Fields(value)
			if len(fields) > 0 {
				if dbm, err := strconv.Atoi(fields[0]); err == nil {
					info.RSSI = wifi_monitor.SomeInt(dbm)
				}
			}
		}
	}

	return info
}

var _ wifi_monitor.ConnectionManager = (*IwConnectionManager)(nil)
