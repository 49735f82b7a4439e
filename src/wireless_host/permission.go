package wireless_host

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/OpenTollGate/tollgate-wifi-monitor/src/wifi_monitor"
)

const procStatusPath = "/proc/self/status"

// CapabilityPermissionOracle grants permissions named after Linux
// capabilities when they are in the effective set of this process.
type CapabilityPermissionOracle struct {
	uid       int
	effective uint64
}

// NewCapabilityPermissionOracle reads the effective capability set of the
// current process.
func NewCapabilityPermissionOracle() (*CapabilityPermissionOracle, error) {
	f, err := os.Open(procStatusPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", procStatusPath, err)
	}
	defer f.Close()

	effective, err := parseEffectiveCapabilities(f)
	if err != nil {
		return nil, err
	}
	return &CapabilityPermissionOracle{uid: os.Geteuid(), effective: effective}, nil
}

// IsGranted reports whether permission is held. Root holds every permission.
func (o *CapabilityPermissionOracle) IsGranted(permission string) bool {
	if o.uid == 0 {
		return true
	}
	bit, known := capabilityBit(permission)
	if !known {
		logger.WithField("permission", permission).Warn("Unknown permission requested")
		return false
	}
	return o.effective&(uint64(1)<<uint(bit)) != 0
}

// parseEffectiveCapabilities extracts the CapEff mask from a proc status file.
func parseEffectiveCapabilities(r io.Reader) (uint64, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		key, value, found := strings.Cut(scanner.Text(), ":")
		if !found || key != "CapEff" {
			continue
		}
		mask, err := strconv.ParseUint(strings.TrimSpace(value), 16, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid CapEff value %q: %w", value, err)
		}
		return mask, nil
	}
	if err := scanner.Err(); err != nil {
		return 0, err
	}
	return 0, fmt.Errorf("CapEff not found in process status")
}

var _ wifi_monitor.PermissionOracle = (*CapabilityPermissionOracle)(nil)
