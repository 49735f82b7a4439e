package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/OpenTollGate/tollgate-wifi-monitor/src/config_manager"
	"github.com/OpenTollGate/tollgate-wifi-monitor/src/wifi_monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Split(strings.TrimSpace(b.buf.String()), "\n")
}

// connectedSource reports one association as soon as it starts.
type connectedSource struct {
	stopped chan struct{}
}

func (s *connectedSource) Start(emit wifi_monitor.EmitFunc) error {
	emit(wifi_monitor.RawSignal{
		RawState: wifi_monitor.RawStateEnabled,
		Connection: &wifi_monitor.ConnectionInfo{
			SSID:         wifi_monitor.SomeString("TollGate-Uplink"),
			BSSID:        wifi_monitor.SomeString("aa:bb:cc:dd:ee:ff"),
			FrequencyMHz: wifi_monitor.SomeInt(5200),
			RSSI:         wifi_monitor.SomeInt(-61),
		},
	})
	return nil
}

func (s *connectedSource) Stop() error {
	close(s.stopped)
	return nil
}

type allowAll struct{}

func (allowAll) IsGranted(string) bool { return true }

func TestWatchPrintsStatusesUntilCancelled(t *testing.T) {
	source := &connectedSource{stopped: make(chan struct{})}
	monitor, err := wifi_monitor.NewBuilder().Source(source).PermissionOracle(allowAll{}).Build()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	out := &lockedBuffer{}
	done := make(chan error, 1)
	go func() { done <- watch(ctx, monitor, out, true) }()

	require.Eventually(t, func() bool { return len(out.lines()) == 2 }, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch did not return after cancellation")
	}

	select {
	case <-source.stopped:
	default:
		t.Fatal("source was not stopped when watch returned")
	}

	lines := out.lines()
	var first, second map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))

	assert.Equal(t, "UNKNOWN", first["state"])
	assert.Nil(t, first["ssid"])
	assert.Equal(t, "CONNECTED", second["state"])
	assert.Equal(t, "TollGate-Uplink", second["ssid"])
	assert.Equal(t, "BAND_5GHZ", second["band"])
	assert.Equal(t, float64(-61), second["rssi"])
	assert.Contains(t, second, "time")
}

func TestPrintStatusText(t *testing.T) {
	var out bytes.Buffer
	status := wifi_monitor.Status{
		State: wifi_monitor.StateConnectedNoPermission,
		SSID:  wifi_monitor.SomeString(wifi_monitor.RedactedSSID),
		Band:  wifi_monitor.Band2_4GHz,
	}

	require.NoError(t, printStatus(&out, status, false))
	assert.Equal(t, "CONNECTED_NO_PERMISSION ssid=\"<unknown ssid>\" band=BAND_2_4GHZ\n", out.String())
}

func TestApplyOverrides(t *testing.T) {
	defer func() { logLevel, interfaceName, strategy = "", "", "" }()
	logLevel, interfaceName, strategy = "debug", "phy1-sta0", config_manager.StrategyReceiver

	cfg := config_manager.NewDefaultConfig()
	applyOverrides(cfg)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "phy1-sta0", cfg.Monitor.Interface)
	assert.Equal(t, config_manager.StrategyReceiver, cfg.Monitor.Strategy)
	assert.Equal(t, "iw", cfg.Monitor.IwPath)
}
