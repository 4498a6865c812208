package main

import (
	"PicoWeather/supervisor"
)

type ProgramArgs struct {
	// Network Options
	SSID       string `long:"ssid" env:"WIFI_SSID" description:"Wireless network to join"`
	Passphrase string `long:"passphrase" env:"WIFI_PASSWORD" description:"WPA passphrase, empty for an open network"`
	Hostname   string `long:"hostname" env:"DEVICE_HOSTNAME" default:"pico-weather" description:"Hostname to set and report"`
	Interface  string `short:"i" long:"iface" env:"NET_IFACE" default:"wlan0" description:"Network interface"`
	Link       string `long:"link" default:"wifi" choice:"wifi" choice:"iface" description:"Join the network over nl80211, or use an interface configured by the OS"`

	// Server Options
	Host        string `short:"H" long:"host" default:"0.0.0.0" description:"IP to listen on"`
	Port        uint16 `short:"P" long:"port" default:"80" description:"Port to listen on"`
	RecheckLink bool   `long:"recheck-link" description:"Check the link before every request instead of only when the listener fails"`

	// Hardware Options
	Sensor    string `short:"S" long:"sensor" env:"SENSOR" default:"dht11" choice:"dht11" choice:"dht22" choice:"scd4x" choice:"sim" description:"Sensor type"`
	SensorPin string `long:"sensor-pin" default:"GPIO4" description:"GPIO the DHT data line is on"`
	I2CDevice string `short:"D" long:"i2cdev" description:"The used I2C device (default: auto)"`
	LEDPin    string `long:"led-pin" default:"GPIO17" description:"GPIO driving the status LED, empty to disable"`
}

func (a ProgramArgs) Mode() supervisor.Mode {
	if a.RecheckLink {
		return supervisor.PerRequest
	}
	return supervisor.Nested
}
