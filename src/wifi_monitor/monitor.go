package wifi_monitor

// Monitor is an explicitly owned, fully wired wireless connectivity monitor.
// Its collaborators are fixed when it is built.
type Monitor struct {
	*Hub
	strategy          Strategy
	permissionGranted bool
}

// Strategy reports which source variant the monitor drives.
func (m *Monitor) Strategy() Strategy {
	return m.strategy
}

// PermissionGranted reports the permission flag cached at build time.
func (m *Monitor) PermissionGranted() bool {
	return m.permissionGranted
}
