// Package wifi_monitor classifies wireless connectivity signals and multiplexes them to observers.
package wifi_monitor

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RedactedSSID replaces the network name when the caller lacks permission to read it.
const RedactedSSID = "<unknown ssid>"

// State is the classified connectivity state.
type State int

const (
	StateUnknown State = iota
	StateConnected
	StateConnectedNoPermission
	StateDisconnected
	StateEnabling
)

// String returns the wire name of the state
func (s State) String() string {
	switch s {
	case StateConnected:
		return "CONNECTED"
	case StateConnectedNoPermission:
		return "CONNECTED_NO_PERMISSION"
	case StateDisconnected:
		return "DISCONNECTED"
	case StateEnabling:
		return "ENABLING"
	default:
		return "UNKNOWN"
	}
}

// MarshalText lets State appear by name in JSON output.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Band is the frequency range of the wireless channel.
type Band int

const (
	BandUnknown Band = iota
	Band2_4GHz
	Band5GHz
)

// String returns the wire name of the band
func (b Band) String() string {
	switch b {
	case Band2_4GHz:
		return "BAND_2_4GHZ"
	case Band5GHz:
		return "BAND_5GHZ"
	default:
		return "UNKNOWN"
	}
}

// MarshalText lets Band appear by name in JSON output.
func (b Band) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// RawState is the radio state reported by the host.
type RawState int

const (
	RawStateOther RawState = iota
	RawStateDisabled
	RawStateDisabling
	RawStateEnabled
	RawStateEnabling
)

func (r RawState) String() string {
	switch r {
	case RawStateDisabled:
		return "DISABLED"
	case RawStateDisabling:
		return "DISABLING"
	case RawStateEnabled:
		return "ENABLED"
	case RawStateEnabling:
		return "ENABLING"
	default:
		return "OTHER"
	}
}

// OptionalString is a comparable optional string.
type OptionalString struct {
	Value string
	Valid bool
}

// SomeString wraps a present value.
func SomeString(v string) OptionalString {
	return OptionalString{Value: v, Valid: true}
}

// MarshalJSON encodes an absent value as null.
func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// OptionalInt is a comparable optional int.
type OptionalInt struct {
	Value int
	Valid bool
}

// SomeInt wraps a present value.
func SomeInt(v int) OptionalInt {
	return OptionalInt{Value: v, Valid: true}
}

// MarshalJSON encodes an absent value as null.
func (o OptionalInt) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// ConnectionInfo describes the access point the host is associated with.
// Every field is optional because hosts report partial data.
type ConnectionInfo struct {
	SSID         OptionalString
	BSSID        OptionalString
	FrequencyMHz OptionalInt
	RSSI         OptionalInt
}

// RawSignal is a single unclassified event produced by a Source.
type RawSignal struct {
	RawState   RawState
	Connection *ConnectionInfo
}

// Status is the classified connectivity status delivered to observers.
// Status values are comparable with == and are never mutated after creation.
type Status struct {
	State State          `json:"state"`
	SSID  OptionalString `json:"ssid"`
	BSSID OptionalString `json:"bssid"`
	Band  Band           `json:"band"`
	RSSI  OptionalInt    `json:"rssi"`
}

// UnknownStatus is the status before any signal has been received.
var UnknownStatus = Status{State: StateUnknown}

func (s Status) String() string {
	var b strings.Builder
	b.WriteString(s.State.String())
	if s.SSID.Valid {
		fmt.Fprintf(&b, " ssid=%q", s.SSID.Value)
	}
	if s.BSSID.Valid {
		fmt.Fprintf(&b, " bssid=%s", s.BSSID.Value)
	}
	if s.Band != BandUnknown {
		fmt.Fprintf(&b, " band=%s", s.Band)
	}
	if s.RSSI.Valid {
		fmt.Fprintf(&b, " rssi=%ddBm", s.RSSI.Value)
	}
	return b.String()
}
