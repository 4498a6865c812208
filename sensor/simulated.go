package sensor

import (
	"math/rand"
)

// Simulated produces plausible indoor values for hosts without a sensor.
type Simulated struct{}

func (Simulated) Name() string {
	return "simulated"
}

func (Simulated) Read() (Reading, error) {
	return Reading{
		Temperature: 20.0 + rand.Float64()*10.0,
		Humidity:    40.0 + rand.Float64()*40.0,
	}, nil
}
