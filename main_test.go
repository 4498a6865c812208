package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PicoWeather/supervisor"
)

// clearEnv unsets the option variables for the test; Setenv restores them.
func clearEnv(t *testing.T) {
	for _, k := range []string{"WIFI_SSID", "WIFI_PASSWORD", "DEVICE_HOSTNAME", "NET_IFACE", "SENSOR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestParseArgsDefaults(t *testing.T) {
	clearEnv(t)

	a, err := parseArgs([]string{"--ssid", "greenhouse"})
	require.NoError(t, err)

	assert.Equal(t, "greenhouse", a.SSID)
	assert.Equal(t, "pico-weather", a.Hostname)
	assert.Equal(t, "wlan0", a.Interface)
	assert.Equal(t, "wifi", a.Link)
	assert.Equal(t, "0.0.0.0", a.Host)
	assert.Equal(t, uint16(80), a.Port)
	assert.Equal(t, "dht11", a.Sensor)
	assert.Equal(t, "GPIO4", a.SensorPin)
	assert.Equal(t, "GPIO17", a.LEDPin)
	assert.Equal(t, supervisor.Nested, a.Mode())
}

func TestParseArgsFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("WIFI_SSID", "attic")
	t.Setenv("WIFI_PASSWORD", "s3cret")
	t.Setenv("DEVICE_HOSTNAME", "attic-weather")
	t.Setenv("SENSOR", "scd4x")

	a, err := parseArgs([]string{"-P", "8080", "--recheck-link"})
	require.NoError(t, err)

	assert.Equal(t, "attic", a.SSID)
	assert.Equal(t, "s3cret", a.Passphrase)
	assert.Equal(t, "attic-weather", a.Hostname)
	assert.Equal(t, "scd4x", a.Sensor)
	assert.Equal(t, uint16(8080), a.Port)
	assert.Equal(t, supervisor.PerRequest, a.Mode())
}

func TestParseArgsRequiresSSIDForWiFi(t *testing.T) {
	clearEnv(t)

	_, err := parseArgs(nil)
	assert.ErrorContains(t, err, "missing WiFi SSID")

	a, err := parseArgs([]string{"--link", "iface", "-i", "eth0", "--sensor", "sim", "--led-pin", ""})
	require.NoError(t, err)
	assert.Equal(t, "eth0", a.Interface)
	assert.Empty(t, a.LEDPin)
}

func TestParseArgsRejectsUnknownSensor(t *testing.T) {
	clearEnv(t)

	_, err := parseArgs([]string{"--ssid", "x", "--sensor", "bme680"})
	assert.Error(t, err)
}
