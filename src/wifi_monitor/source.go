package wifi_monitor

import (
	"fmt"
)

// Strategy names the notification mechanism a Source uses.
type Strategy int

const (
	StrategyCustom Strategy = iota
	StrategyCapability
	StrategyReceiver
)

func (s Strategy) String() string {
	switch s {
	case StrategyCapability:
		return "capability"
	case StrategyReceiver:
		return "receiver"
	default:
		return "custom"
	}
}

// NewPlatformSource picks the Source variant for this host. The choice is made
// once from a static capability check and never revisited.
func NewPlatformSource(platform Platform, manager ConnectionManager, host HostContext) (Source, Strategy, error) {
	if platform == nil {
		return nil, StrategyCustom, fmt.Errorf("no platform to select a source strategy from")
	}
	if manager == nil {
		return nil, StrategyCustom, fmt.Errorf("platform source requires a connection manager")
	}

	if platform.SupportsCapabilityCallbacks() {
		service, err := host.CapabilityService()
		if err != nil {
			return nil, StrategyCapability, fmt.Errorf("failed to resolve capability service: %w", err)
		}
		logger.WithField("strategy", StrategyCapability).Debug("Selected source strategy")
		return NewCapabilitySource(service, manager), StrategyCapability, nil
	}

	service, err := host.ReceiverService()
	if err != nil {
		return nil, StrategyReceiver, fmt.Errorf("failed to resolve receiver service: %w", err)
	}
	logger.WithField("strategy", StrategyReceiver).Debug("Selected source strategy")
	return NewReceiverSource(service, manager), StrategyReceiver, nil
}
