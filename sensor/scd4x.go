package sensor

import (
	"fmt"
	"log"

	"github.com/aldernero/scd4x"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
)

// SCD4x is a Sensirion SCD40/41 in periodic measurement mode.
type SCD4x struct {
	bus i2c.BusCloser
	dev *scd4x.SCD4x
}

// OpenSCD4x opens the I2C bus (empty name picks the first one) and restarts
// periodic measurements. The first sample is ready about five seconds later.
func OpenSCD4x(busName string) (*SCD4x, error) {
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, fmt.Errorf("couldn't open I2C device: %w", err)
	}

	dev, err := scd4x.SensorInit(bus, false)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("couldn't initialize SCD4x: %w", err)
	}

	log.Println("Initializing SCD4x…")
	if err := dev.StopMeasurements(); err != nil {
		bus.Close()
		return nil, fmt.Errorf("error while trying to stop periodic measurements: %w", err)
	}
	if err := dev.StartMeasurements(); err != nil {
		bus.Close()
		return nil, fmt.Errorf("error while trying to start periodic measurements: %w", err)
	}

	return &SCD4x{bus: bus, dev: dev}, nil
}

func (s *SCD4x) Name() string {
	return "SCD4x"
}

func (s *SCD4x) Read() (Reading, error) {
	data, err := s.dev.ReadMeasurement()
	if err != nil {
		return Reading{}, fmt.Errorf("error while reading SCD4x data: %w", err)
	}
	return Reading{Temperature: data.Temp, Humidity: data.Rh}, nil
}

// Close stops periodic measurements and releases the bus.
func (s *SCD4x) Close() error {
	if err := s.dev.StopMeasurements(); err != nil {
		s.bus.Close()
		return err
	}
	return s.bus.Close()
}
