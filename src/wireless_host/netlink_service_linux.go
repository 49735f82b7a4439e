//go:build linux
// +build linux

package wireless_host

import (
	"fmt"
	"sync"

	"github.com/OpenTollGate/tollgate-wifi-monitor/src/wifi_monitor"
	"github.com/vishvananda/netlink"
)

// NetlinkCapabilityService reports link changes on one wireless interface as
// capability callbacks, using an rtnetlink subscription per registered handler.
type NetlinkCapabilityService struct {
	iface string

	mu            sync.Mutex
	subscriptions map[wifi_monitor.CapabilityHandler]*linkSubscription
}

type linkSubscription struct {
	done chan struct{}
	wg   sync.WaitGroup
}

// NewNetlinkCapabilityService creates a service watching iface.
func NewNetlinkCapabilityService(iface string) *NetlinkCapabilityService {
	return &NetlinkCapabilityService{
		iface:         iface,
		subscriptions: make(map[wifi_monitor.CapabilityHandler]*linkSubscription),
	}
}

// RegisterCallback subscribes to link updates and calls handler for every
// update on the watched interface, plus once right after registration.
func (s *NetlinkCapabilityService) RegisterCallback(handler wifi_monitor.CapabilityHandler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.subscriptions[handler]; exists {
		return fmt.Errorf("capability handler is already registered")
	}

	updates := make(chan netlink.LinkUpdate)
	sub := &linkSubscription{done: make(chan struct{})}

	err := netlink.LinkSubscribeWithOptions(updates, sub.done, netlink.LinkSubscribeOptions{
		ErrorCallback: func(err error) {
			logger.WithError(err).WithField("interface", s.iface).Warn("Link subscription error")
		},
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to link updates: %w", err)
	}

	s.subscriptions[handler] = sub
	sub.wg.Add(1)
	go s.monitorLinkChanges(handler, updates, sub)

	logger.WithField("interface", s.iface).Info("Monitoring wireless link changes")
	return nil
}

// UnregisterCallback closes the subscription and waits for its goroutine, so
// handler is not called once this returns.
func (s *NetlinkCapabilityService) UnregisterCallback(handler wifi_monitor.CapabilityHandler) error {
	s.mu.Lock()
	sub, exists := s.subscriptions[handler]
	delete(s.subscriptions, handler)
	s.mu.Unlock()

	if !exists {
		return nil
	}

	close(sub.done)
	sub.wg.Wait()
	logger.WithField("interface", s.iface).Info("Stopped monitoring wireless link changes")
	return nil
}

func (s *NetlinkCapabilityService) monitorLinkChanges(handler wifi_monitor.CapabilityHandler, updates <-chan netlink.LinkUpdate, sub *linkSubscription) {
	defer sub.wg.Done()

	handler.OnCapabilitiesChanged(wifi_monitor.Capabilities{Interface: s.iface})

	for {
		select {
		case <-sub.done:
			// netlink sends on updates without watching done; keep reading
			// until it closes the channel so its reader can exit.
			for range updates {
			}
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			s.handleLinkUpdate(handler, update)
		}
	}
}

func (s *NetlinkCapabilityService) handleLinkUpdate(handler wifi_monitor.CapabilityHandler, update netlink.LinkUpdate) {
	if update.Link == nil {
		return
	}
	attrs := update.Link.Attrs()
	if attrs == nil || attrs.Name != s.iface {
		return
	}

	logger.WithFields(map[string]interface{}{
		"interface":  attrs.Name,
		"oper_state": attrs.OperState.String(),
	}).Debug("Wireless link changed")

	// rtnetlink carries no association details; the source queries them.
	handler.OnCapabilitiesChanged(wifi_monitor.Capabilities{Interface: attrs.Name})
}

// Ensure NetlinkCapabilityService implements CapabilityService
var _ wifi_monitor.CapabilityService = (*NetlinkCapabilityService)(nil)
