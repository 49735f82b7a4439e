//go:build linux
// +build linux

package wireless_host

import (
	"golang.org/x/sys/unix"
)

var capabilityBits = map[string]int{
	"CAP_NET_ADMIN": unix.CAP_NET_ADMIN,
	"CAP_NET_RAW":   unix.CAP_NET_RAW,
}

func capabilityBit(name string) (int, bool) {
	bit, ok := capabilityBits[name]
	return bit, ok
}

// kernelRelease returns the running kernel release, e.g. "5.15.137".
func kernelRelease() (string, error) {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return "", err
	}
	return unix.ByteSliceToString(uts.Release[:]), nil
}
