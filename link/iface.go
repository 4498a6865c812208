package link

import (
	"fmt"
	"net"
)

// Iface is an interface configured by something else (a cable, NetworkManager,
// wpa_supplicant). Connect is a no-op; Connected means up with an address.
type Iface struct {
	name string
}

func NewIface(name string) *Iface {
	return &Iface{name: name}
}

func (i *Iface) Connect(string, string) error {
	return nil
}

func (i *Iface) Connected() bool {
	ifi, err := net.InterfaceByName(i.name)
	if err != nil || ifi.Flags&net.FlagUp == 0 {
		return false
	}
	_, err = firstIPv4(ifi)
	return err == nil
}

func (i *Iface) Address() (net.IP, net.HardwareAddr, error) {
	ifi, err := net.InterfaceByName(i.name)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrNoInterface, i.name)
	}
	ip, err := firstIPv4(ifi)
	if err != nil {
		return nil, nil, err
	}
	return ip, ifi.HardwareAddr, nil
}

func firstIPv4(ifi *net.Interface) (net.IP, error) {
	addrs, err := ifi.Addrs()
	if err != nil {
		return nil, fmt.Errorf("addresses of %s: %w", ifi.Name, err)
	}
	for _, a := range addrs {
		ipn, ok := a.(*net.IPNet)
		if !ok {
			continue
		}
		if v4 := ipn.IP.To4(); v4 != nil {
			return v4, nil
		}
	}
	return nil, fmt.Errorf("%w on %s", ErrNoAddress, ifi.Name)
}
