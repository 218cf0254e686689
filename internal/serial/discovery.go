package serial

import (
	"sort"

	"go.bug.st/serial/enumerator"
)

// DeviceInfo describes one serial device the OS currently reports, as
// returned by Discover. It is advisory: it never drives Hub state, it only
// enriches the port-list popup (see SPEC_FULL.md, Supplemented Features).
type DeviceInfo struct {
	Path         string
	IsUSB        bool
	VID, PID     string
	SerialNumber string
}

// Discover enumerates the serial devices currently visible to the OS.
// Grounded on the teacher's internal/serial/scanner.go, trimmed to the one
// thing the display layer needs: whether a configured port's device is
// actually present.
func Discover() ([]DeviceInfo, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}

	out := make([]DeviceInfo, 0, len(ports))
	for _, p := range ports {
		out = append(out, DeviceInfo{
			Path:         p.Name,
			IsUSB:        p.IsUSB,
			VID:          p.VID,
			PID:          p.PID,
			SerialNumber: p.SerialNumber,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

// Present reports whether path appears in devices.
func Present(devices []DeviceInfo, path string) bool {
	for _, d := range devices {
		if d.Path == path {
			return true
		}
	}
	return false
}
