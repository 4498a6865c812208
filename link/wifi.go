package link

import (
	"fmt"
	"net"

	"github.com/mdlayher/wifi"
)

// WiFi drives a station-mode wireless interface over nl80211. Joining needs
// CAP_NET_ADMIN and an interface no other supplicant is managing.
type WiFi struct {
	client *wifi.Client
	ifi    *wifi.Interface
}

func OpenWiFi(name string) (*WiFi, error) {
	c, err := wifi.New()
	if err != nil {
		return nil, fmt.Errorf("couldn't open nl80211: %w", err)
	}

	ifis, err := c.Interfaces()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("couldn't list wireless interfaces: %w", err)
	}
	for _, ifi := range ifis {
		if ifi.Name == name {
			return &WiFi{client: c, ifi: ifi}, nil
		}
	}

	c.Close()
	return nil, fmt.Errorf("%w: %s", ErrNoInterface, name)
}

// Connect joins an open network when passphrase is empty, WPA-PSK otherwise.
func (w *WiFi) Connect(ssid, passphrase string) error {
	if passphrase == "" {
		return w.client.Connect(w.ifi, ssid)
	}
	return w.client.ConnectWPAPSK(w.ifi, ssid, passphrase)
}

func (w *WiFi) Connected() bool {
	bss, err := w.client.BSS(w.ifi)
	if err != nil || bss.Status != wifi.BSSStatusAssociated {
		return false
	}
	_, _, err = w.Address()
	return err == nil
}

func (w *WiFi) Address() (net.IP, net.HardwareAddr, error) {
	ifi, err := net.InterfaceByIndex(w.ifi.Index)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoInterface, w.ifi.Name)
	}
	ip, err := firstIPv4(ifi)
	if err != nil {
		return nil, nil, err
	}
	return ip, w.ifi.HardwareAddr, nil
}

func (w *WiFi) Close() error {
	return w.client.Close()
}
