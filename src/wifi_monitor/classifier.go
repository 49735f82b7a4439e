package wifi_monitor

// bandSplitMHz separates the 2.4 GHz channels from the 5 GHz ones.
const bandSplitMHz = 3000

// BandForFrequency derives the band from a channel frequency.
func BandForFrequency(frequency OptionalInt) Band {
	if !frequency.Valid || frequency.Value <= 0 {
		return BandUnknown
	}
	if frequency.Value > bandSplitMHz {
		return Band5GHz
	}
	return Band2_4GHz
}

// Classify maps a raw host signal to a Status. It never fails: anything it
// does not recognise becomes StateUnknown.
func Classify(raw RawSignal, permissionGranted bool) Status {
	switch raw.RawState {
	case RawStateDisabled, RawStateDisabling:
		return Status{State: StateDisconnected}
	case RawStateEnabled:
		return classifyEnabled(raw.Connection, permissionGranted)
	case RawStateEnabling:
		return Status{State: StateEnabling}
	default:
		return UnknownStatus
	}
}

func classifyEnabled(conn *ConnectionInfo, permissionGranted bool) Status {
	if conn == nil {
		if permissionGranted {
			return Status{State: StateConnected}
		}
		return Status{State: StateConnectedNoPermission}
	}

	band := BandForFrequency(conn.FrequencyMHz)
	if !permissionGranted {
		// The real SSID must never leak without permission.
		return Status{
			State: StateConnectedNoPermission,
			SSID:  SomeString(RedactedSSID),
			Band:  band,
		}
	}

	return Status{
		State: StateConnected,
		SSID:  conn.SSID,
		BSSID: conn.BSSID,
		Band:  band,
		RSSI:  conn.RSSI,
	}
}
