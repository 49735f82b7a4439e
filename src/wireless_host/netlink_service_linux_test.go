//go:build linux
// +build linux

package wireless_host

import (
	"sync"
	"testing"
	"time"

	"github.com/OpenTollGate/tollgate-wifi-monitor/src/wifi_monitor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vishvananda/netlink"
)

type capabilityRecorder struct {
	mu    sync.Mutex
	calls []wifi_monitor.Capabilities
}

func (r *capabilityRecorder) OnCapabilitiesChanged(caps wifi_monitor.Capabilities) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, caps)
}

func (r *capabilityRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func linkUpdate(name string) netlink.LinkUpdate {
	return netlink.LinkUpdate{Link: &netlink.Device{LinkAttrs: netlink.LinkAttrs{Name: name}}}
}

func waitForGroup(t *testing.T, wg *sync.WaitGroup) {
	t.Helper()
	exited := make(chan struct{})
	go func() {
		wg.Wait()
		close(exited)
	}()
	select {
	case <-exited:
	case <-time.After(2 * time.Second):
		t.Fatal("link monitor goroutine did not exit")
	}
}

func TestHandleLinkUpdateFiltersInterface(t *testing.T) {
	tests := []struct {
		name   string
		update netlink.LinkUpdate
		want   int
	}{
		{"other interface", linkUpdate("eth0"), 0},
		{"nil link", netlink.LinkUpdate{}, 0},
		{"watched interface", linkUpdate("wlan0"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := NewNetlinkCapabilityService("wlan0")
			recorder := &capabilityRecorder{}

			service.handleLinkUpdate(recorder, tt.update)

			require.Equal(t, tt.want, recorder.count())
			if tt.want > 0 {
				assert.Equal(t, "wlan0", recorder.calls[0].Interface)
				assert.Nil(t, recorder.calls[0].Connection)
			}
		})
	}
}

func TestMonitorLinkChangesNotifiesOnceOnRegistration(t *testing.T) {
	service := NewNetlinkCapabilityService("wlan0")
	recorder := &capabilityRecorder{}
	updates := make(chan netlink.LinkUpdate)
	sub := &linkSubscription{done: make(chan struct{})}

	sub.wg.Add(1)
	go service.monitorLinkChanges(recorder, updates, sub)

	require.Eventually(t, func() bool { return recorder.count() == 1 }, time.Second, 5*time.Millisecond)

	updates <- linkUpdate("eth0")
	updates <- linkUpdate("wlan0")
	require.Eventually(t, func() bool { return recorder.count() == 2 }, time.Second, 5*time.Millisecond)

	close(sub.done)
	close(updates)
	waitForGroup(t, &sub.wg)
	assert.Equal(t, 2, recorder.count())
}

func TestMonitorLinkChangesDrainsAfterDone(t *testing.T) {
	service := NewNetlinkCapabilityService("wlan0")
	recorder := &capabilityRecorder{}
	updates := make(chan netlink.LinkUpdate)
	sub := &linkSubscription{done: make(chan struct{})}

	sub.wg.Add(1)
	go service.monitorLinkChanges(recorder, updates, sub)
	require.Eventually(t, func() bool { return recorder.count() == 1 }, time.Second, 5*time.Millisecond)

	close(sub.done)

	// A late update from the netlink reader must still be accepted.
	sent := make(chan struct{})
	go func() {
		updates <- linkUpdate("wlan0")
		updates <- linkUpdate("wlan0")
		close(updates)
		close(sent)
	}()

	select {
	case <-sent:
	case <-time.After(2 * time.Second):
		t.Fatal("update sent after done was never read")
	}
	waitForGroup(t, &sub.wg)
}
