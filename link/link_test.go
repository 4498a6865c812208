package link

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PicoWeather/status"
)

type fakeDriver struct {
	connects   []Credentials
	connectErr error
	// checks left before Connected reports true; negative means never
	pending int
	checks  int
}

func (f *fakeDriver) Connect(ssid, passphrase string) error {
	f.connects = append(f.connects, Credentials{SSID: ssid, Passphrase: passphrase})
	return f.connectErr
}

func (f *fakeDriver) Connected() bool {
	f.checks++
	if f.pending == 0 {
		return true
	}
	if f.pending > 0 {
		f.pending--
	}
	return false
}

func (f *fakeDriver) Address() (net.IP, net.HardwareAddr, error) {
	return net.IPv4(192, 168, 4, 2), net.HardwareAddr{0x28, 0xcd, 0xc1, 0x00, 0x01, 0x02}, nil
}

type signals []status.State

func (s *signals) Signal(st status.State) { *s = append(*s, st) }

type sleeps []time.Duration

func (s *sleeps) Sleep(d time.Duration) { *s = append(*s, d) }

var creds = Credentials{SSID: "greenhouse", Passphrase: "hunter22"}

func TestJoinWaitsUntilConnected(t *testing.T) {
	drv := &fakeDriver{pending: 3}
	var sig signals
	var slept sleeps
	m := NewManager(drv, creds, &sig, &slept)

	require.NoError(t, m.Join(context.Background()))

	assert.Equal(t, []Credentials{creds}, drv.connects, "one connect request only")
	assert.Equal(t, signals{status.Connecting, status.Connecting, status.Connecting}, sig)
	assert.Equal(t, sleeps{DefaultPollInterval, DefaultPollInterval, DefaultPollInterval}, slept)
	assert.Equal(t, Connected, m.State())
}

func TestJoinUsesPollInterval(t *testing.T) {
	drv := &fakeDriver{pending: 2}
	var sig signals
	var slept sleeps
	m := NewManager(drv, creds, &sig, &slept)
	m.PollInterval = 50 * time.Millisecond

	require.NoError(t, m.Join(context.Background()))

	assert.Equal(t, sleeps{50 * time.Millisecond, 50 * time.Millisecond}, slept)
}

func TestJoinKeepsPollingAfterConnectError(t *testing.T) {
	drv := &fakeDriver{pending: 1, connectErr: errors.New("operation not permitted")}
	var sig signals
	var slept sleeps

	require.NoError(t, NewManager(drv, creds, &sig, &slept).Join(context.Background()))
	assert.Len(t, sig, 1)
}

func TestJoinStopsOnCancel(t *testing.T) {
	drv := &fakeDriver{pending: -1}
	var sig signals
	ctx, cancel := context.WithCancel(context.Background())

	cancelling := sleepFunc(func(time.Duration) {
		if len(sig) == 50 {
			cancel()
		}
	})

	err := NewManager(drv, creds, &sig, cancelling).Join(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, sig, 50)
}

type sleepFunc func(time.Duration)

func (f sleepFunc) Sleep(d time.Duration) { f(d) }

func TestReconnectAndState(t *testing.T) {
	drv := &fakeDriver{pending: -1}
	var sig signals
	var slept sleeps
	m := NewManager(drv, creds, &sig, &slept)

	assert.False(t, m.Connected())
	assert.Equal(t, "disconnected", m.State().String())
	require.NoError(t, m.Reconnect())
	assert.Equal(t, []Credentials{creds}, drv.connects)
	assert.Empty(t, sig, "reconnect does not blink")

	ip, mac, err := m.Address()
	require.NoError(t, err)
	assert.Equal(t, "192.168.4.2", ip.String())
	assert.Equal(t, "28:cd:c1:00:01:02", mac.String())
}

func loopback(t *testing.T) net.Interface {
	t.Helper()
	ifis, err := net.Interfaces()
	require.NoError(t, err)
	for _, ifi := range ifis {
		if ifi.Flags&net.FlagLoopback != 0 && ifi.Flags&net.FlagUp != 0 {
			if _, err := firstIPv4(&ifi); err == nil {
				return ifi
			}
		}
	}
	t.Skip("no loopback interface with an IPv4 address")
	return net.Interface{}
}

func TestIfaceLoopback(t *testing.T) {
	lo := loopback(t)
	i := NewIface(lo.Name)

	require.NoError(t, i.Connect("ignored", "ignored"))
	assert.True(t, i.Connected())

	ip, _, err := i.Address()
	require.NoError(t, err)
	assert.True(t, ip.IsLoopback())
}

func TestIfaceMissing(t *testing.T) {
	i := NewIface("nosuchif0")

	assert.False(t, i.Connected())
	_, _, err := i.Address()
	assert.ErrorIs(t, err, ErrNoInterface)
}
