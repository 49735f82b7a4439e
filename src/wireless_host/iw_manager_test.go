package wireless_host

import (
	"errors"
	"testing"

	"github.com/OpenTollGate/tollgate-wifi-monitor/src/wifi_monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const iwConnected = `Connected to AA:BB:CC:DD:EE:FF (on wlan0)
	SSID: Cafe: Guest
	freq: 5180.0
	RX: 2134 bytes (17 packets)
	TX: 1200 bytes (10 packets)
	signal: -52 dBm
	rx bitrate: 6.0 MBit/s
	tx bitrate: 54.0 MBit/s

	bss flags:	short-slot-time
	dtim period:	2
	beacon int:	100
`

func TestParseIwLinkConnected(t *testing.T) {
	info := parseIwLink([]byte(iwConnected))
	require.NotNil(t, info)

	assert.Equal(t, wifi_monitor.SomeString("aa:bb:cc:dd:ee:ff"), info.BSSID)
	assert.Equal(t, wifi_monitor.SomeString("Cafe: Guest"), info.SSID)
	assert.Equal(t, wifi_monitor.SomeInt(5180), info.FrequencyMHz)
	assert.Equal(t, wifi_monitor.SomeInt(-52), info.RSSI)
}

func TestParseIwLinkNotConnected(t *testing.T) {
	assert.Nil(t, parseIwLink([]byte("Not connected.\n")))
	assert.Nil(t, parseIwLink(nil))
}

func TestParseIwLinkPartialOutput(t *testing.T) {
	info := parseIwLink([]byte("Connected to 00:11:22:33:44:55 (on wlan0)\n\tfreq: 2412\n"))
	require.NotNil(t, info)

	assert.Equal(t, wifi_monitor.SomeString("00:11:22:33:44:55"), info.BSSID)
	assert.False(t, info.SSID.Valid)
	assert.False(t, info.RSSI.Valid)
	assert.Equal(t, wifi_monitor.Band2_4GHz, wifi_monitor.BandForFrequency(info.FrequencyMHz))
}

func TestIwConnectionManagerRunsIw(t *testing.T) {
	var gotName string
	var gotArgs []string
	manager := NewIwConnectionManager("wlan0", "/usr/sbin/iw", func(name string, args ...string) ([]byte, error) {
		gotName, gotArgs = name, args
		return []byte(iwConnected), nil
	})

	info := manager.CurrentConnectionInfo()
	require.NotNil(t, info)
	assert.Equal(t, "/usr/sbin/iw", gotName)
	assert.Equal(t, []string{"dev", "wlan0", "link"}, gotArgs)
}

func TestIwConnectionManagerCommandFailure(t *testing.T) {
	manager := NewIwConnectionManager("wlan0", "", func(name string, args ...string) ([]byte, error) {
		assert.Equal(t, "iw", name)
		return nil, errors.New("command failed")
	})

	assert.Nil(t, manager.CurrentConnectionInfo())
}

func TestIwConnectionManagerRawState(t *testing.T) {
	manager := NewIwConnectionManager("wlan1", "", nil)
	manager.rawState = func(iface string) wifi_monitor.RawState {
		assert.Equal(t, "wlan1", iface)
		return wifi_monitor.RawStateEnabling
	}

	assert.Equal(t, wifi_monitor.RawStateEnabling, manager.CurrentRawState())
}

func TestRawStateForLink(t *testing.T) {
	tests := []struct {
		adminUp   bool
		operState string
		want      wifi_monitor.RawState
	}{
		{false, "up", wifi_monitor.RawStateDisabled},
		{false, "down", wifi_monitor.RawStateDisabled},
		{true, "up", wifi_monitor.RawStateEnabled},
		{true, "dormant", wifi_monitor.RawStateEnabling},
		{true, "down", wifi_monitor.RawStateEnabling},
		{true, "lower-layer-down", wifi_monitor.RawStateEnabling},
		{true, "not-present", wifi_monitor.RawStateDisabled},
		{true, "unknown", wifi_monitor.RawStateOther},
		{true, "testing", wifi_monitor.RawStateOther},
	}

	for _, tt := range tests {
		t.Run(tt.operState, func(t *testing.T) {
			assert.Equal(t, tt.want, rawStateForLink(tt.adminUp, tt.operState))
		})
	}
}
