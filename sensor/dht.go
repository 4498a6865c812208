package sensor

import (
	"fmt"
	"strings"

	"github.com/MichaelS11/go-dht"
)

// DHT is a DHT11 or DHT22 on a single GPIO line.
//
// periph's host drivers must be initialised before OpenDHT is called.
type DHT struct {
	model string
	dev   *dht.DHT
}

// OpenDHT claims pin (a periph name such as "GPIO4") for a sensor of the
// given model, "dht11" or "dht22".
func OpenDHT(pin, model string) (*DHT, error) {
	model = strings.ToLower(model)
	if model != "dht11" && model != "dht22" {
		return nil, fmt.Errorf("unsupported DHT model %q", model)
	}

	dev, err := dht.NewDHT(pin, dht.Celsius, model)
	if err != nil {
		return nil, fmt.Errorf("open %s on %s: %w", model, pin, err)
	}
	return &DHT{model: model, dev: dev}, nil
}

func (d *DHT) Name() string {
	return strings.ToUpper(d.model)
}

// Read makes a single attempt. The driver enforces its own minimum interval
// between reads, so this can block for a couple of seconds.
func (d *DHT) Read() (Reading, error) {
	humidity, temperature, err := d.dev.Read()
	if err != nil {
		return Reading{}, err
	}
	return Reading{Temperature: temperature, Humidity: humidity}, nil
}
