// Package device holds the per-process state shared by the supervisor and the
// request handler.
package device

import (
	"net"

	"PicoWeather/sensor"
	"PicoWeather/status"
)

// Identity is captured once after the first network join. It is not
// refreshed when the link later comes back with a different lease.
type Identity struct {
	IP       string
	Hostname string
	MAC      string
}

// NewIdentity formats the addresses the way clients see them: URLs for the IP
// and the mDNS name, colon-separated lowercase hex for the MAC.
func NewIdentity(ip net.IP, mac net.HardwareAddr, hostname string) Identity {
	return Identity{
		IP:       "http://" + ip.String(),
		Hostname: "http://" + hostname + ".local",
		MAC:      mac.String(),
	}
}

// Context is owned by main and passed by pointer; there are no package-level
// hardware handles.
type Context struct {
	Identity  Identity
	Sensor    sensor.Sensor
	Indicator status.Signaler
}
