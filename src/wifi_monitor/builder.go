package wifi_monitor

import (
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// Builder assembles a Monitor from explicit collaborators, falling back to
// defaults resolved from a HostContext.
type Builder struct {
	host    HostContext
	source  Source
	manager ConnectionManager
	oracle  PermissionOracle
	log     *logrus.Entry
}

// NewBuilder returns an empty builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// HostContext sets the host used to resolve any collaborator not given explicitly.
func (b *Builder) HostContext(host HostContext) *Builder {
	b.host = host
	return b
}

// Source injects a custom source instead of the platform-selected one.
func (b *Builder) Source(source Source) *Builder {
	b.source = source
	return b
}

// ConnectionManager injects the connection manager used by platform sources.
func (b *Builder) ConnectionManager(manager ConnectionManager) *Builder {
	b.manager = manager
	return b
}

// PermissionOracle injects the oracle queried once at build time.
func (b *Builder) PermissionOracle(oracle PermissionOracle) *Builder {
	b.oracle = oracle
	return b
}

// Logger overrides the module logger for the built monitor.
func (b *Builder) Logger(log *logrus.Entry) *Builder {
	b.log = log
	return b
}

// Build resolves every collaborator once and returns the monitor. All
// resolution failures are reported together as a configuration error.
func (b *Builder) Build() (*Monitor, error) {
	var result *multierror.Error

	oracle := b.oracle
	if oracle == nil {
		if b.host == nil {
			result = multierror.Append(result, newConfigurationError("missing_oracle", "no permission oracle and no host context", nil))
		} else if resolved, err := b.host.PermissionOracle(); err != nil {
			result = multierror.Append(result, newConfigurationError("missing_oracle", "failed to resolve permission oracle", err))
		} else {
			oracle = resolved
		}
	}

	source := b.source
	strategy := StrategyCustom
	if source == nil {
		manager := b.manager
		if manager == nil {
			if b.host == nil {
				result = multierror.Append(result, newConfigurationError("missing_manager", "no connection manager and no host context", nil))
			} else if resolved, err := b.host.ConnectionManager(); err != nil {
				result = multierror.Append(result, newConfigurationError("missing_manager", "failed to resolve connection manager", err))
			} else {
				manager = resolved
			}
		}

		switch {
		case b.host == nil:
			result = multierror.Append(result, newConfigurationError("missing_source", "no source and no host context", nil))
		case manager != nil:
			resolved, selected, err := NewPlatformSource(b.host.Platform(), manager, b.host)
			if err != nil {
				result = multierror.Append(result, newConfigurationError("missing_source", "failed to select platform source", err))
			} else {
				source, strategy = resolved, selected
			}
		}
	}

	if err := result.ErrorOrNil(); err != nil {
		return nil, newConfigurationError("build_failed", "cannot build wifi monitor", err)
	}

	log := b.log
	if log == nil {
		log = logger
	}

	permissionGranted := oracle.IsGranted(PermissionConnectionDetails)
	log.WithFields(logrus.Fields{
		"strategy":           strategy.String(),
		"permission_granted": permissionGranted,
	}).Info("Wifi monitor built")

	return &Monitor{
		Hub:               NewHub(source, permissionGranted, log),
		strategy:          strategy,
		permissionGranted: permissionGranted,
	}, nil
}
