// Package link keeps the device on the network.
//
// A Manager has two states. It leaves Disconnected once the driver reports an
// association and an IPv4 address. Until then it keeps signalling and
// re-checking with no attempt limit and no backoff.
package link

import (
	"context"
	"errors"
	"log"
	"net"
	"time"

	"PicoWeather/status"
)

var (
	ErrNoInterface = errors.New("no such interface")
	ErrNoAddress   = errors.New("no IPv4 address")
)

type State int

const (
	Disconnected State = iota
	Connected
)

func (s State) String() string {
	if s == Connected {
		return "connected"
	}
	return "disconnected"
}

// DefaultPollInterval is the wait between link checks while joining.
const DefaultPollInterval = 500 * time.Millisecond

// Driver is the network interface as seen by the Manager.
type Driver interface {
	// Connect asks the interface to join ssid. It does not wait for the
	// association to complete.
	Connect(ssid, passphrase string) error
	// Connected reports association plus address assignment.
	Connected() bool
	Address() (net.IP, net.HardwareAddr, error)
}

type Credentials struct {
	SSID       string
	Passphrase string
}

type Manager struct {
	drv       Driver
	creds     Credentials
	indicator status.Signaler
	clock     status.Sleeper

	PollInterval time.Duration
}

func NewManager(drv Driver, creds Credentials, indicator status.Signaler, clock status.Sleeper) *Manager {
	return &Manager{
		drv:          drv,
		creds:        creds,
		indicator:    indicator,
		clock:        clock,
		PollInterval: DefaultPollInterval,
	}
}

func (m *Manager) State() State {
	if m.drv.Connected() {
		return Connected
	}
	return Disconnected
}

func (m *Manager) Connected() bool {
	return m.State() == Connected
}

// Join issues one connect request and then waits for the link, blinking the
// connecting pattern between checks. It only returns early if ctx is done.
func (m *Manager) Join(ctx context.Context) error {
	log.Printf("Connecting to %q…\n", m.creds.SSID)
	if err := m.drv.Connect(m.creds.SSID, m.creds.Passphrase); err != nil {
		log.Printf("Connect request failed: %v\n", err)
	}

	for !m.drv.Connected() {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.indicator.Signal(status.Connecting)
		m.clock.Sleep(m.PollInterval)
	}
	return nil
}

// Reconnect issues a new connect request without waiting for the result.
func (m *Manager) Reconnect() error {
	return m.drv.Connect(m.creds.SSID, m.creds.Passphrase)
}

// Address returns the current IPv4 and hardware address of the interface.
func (m *Manager) Address() (net.IP, net.HardwareAddr, error) {
	return m.drv.Address()
}
