//go:build !linux
// +build !linux

package wireless_host

import (
	"errors"
)

func capabilityBit(name string) (int, bool) {
	return 0, false
}

// kernelRelease is a stub for non-Linux systems
func kernelRelease() (string, error) {
	return "", errors.New("kernel release is only available on Linux")
}
