package wireless_host

import (
	"fmt"
	"regexp"

	"github.com/OpenTollGate/tollgate-wifi-monitor/src/config_manager"
	"github.com/OpenTollGate/tollgate-wifi-monitor/src/wifi_monitor"
	"github.com/hashicorp/go-version"
)

// DefaultCapabilityConstraint is the kernel range where link notifications
// carry reliable operational state.
const DefaultCapabilityConstraint = ">= 3.0"

var releasePrefix = regexp.MustCompile(`^\d+(\.\d+){0,2}`)

// KernelPlatform decides between capability callbacks and broadcast receivers
// from the configured strategy and the running kernel release.
type KernelPlatform struct {
	release  string
	supports bool
}

// NewKernelPlatform inspects the running kernel.
func NewKernelPlatform(strategy, constraint string) (*KernelPlatform, error) {
	release, err := kernelRelease()
	if err != nil && (strategy == "" || strategy == config_manager.StrategyAuto) {
		return nil, fmt.Errorf("failed to read kernel release: %w", err)
	}
	return newKernelPlatform(release, strategy, constraint)
}

func newKernelPlatform(release, strategy, constraint string) (*KernelPlatform, error) {
	p := &KernelPlatform{release: release}

	switch strategy {
	case config_manager.StrategyCapability:
		p.supports = true
	case config_manager.StrategyReceiver:
		p.supports = false
	case "", config_manager.StrategyAuto:
		supports, err := kernelSatisfies(release, constraint)
		if err != nil {
			return nil, err
		}
		p.supports = supports
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}

	logger.WithFields(map[string]interface{}{
		"kernel":   release,
		"strategy": strategy,
		"supports": p.supports,
	}).Debug("Platform capabilities resolved")
	return p, nil
}

// kernelSatisfies checks release against constraint. Distribution suffixes
// such as "-91-generic" are ignored.
func kernelSatisfies(release, constraint string) (bool, error) {
	if constraint == "" {
		constraint = DefaultCapabilityConstraint
	}
	constraints, err := version.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("invalid kernel constraint %q: %w", constraint, err)
	}

	core := releasePrefix.FindString(release)
	if core == "" {
		return false, fmt.Errorf("unrecognised kernel release %q", release)
	}
	v, err := version.NewVersion(core)
	if err != nil {
		return false, fmt.Errorf("invalid kernel release %q: %w", release, err)
	}
	return constraints.Check(v), nil
}

// SupportsCapabilityCallbacks reports whether the modern strategy should be used.
func (p *KernelPlatform) SupportsCapabilityCallbacks() bool {
	return p.supports
}

// KernelRelease returns the kernel release the decision was based on.
func (p *KernelPlatform) KernelRelease() string {
	return p.release
}

var _ wifi_monitor.Platform = (*KernelPlatform)(nil)
