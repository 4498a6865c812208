package sensor

import (
	"fmt"
)

// Reading is one temperature (°C) and relative humidity (%) sample.
type Reading struct {
	Temperature float64
	Humidity    float64
}

// Sensor interface that all backends implement
type Sensor interface {
	Read() (Reading, error)
	Name() string
}

// ReadError reports a failed measurement. Details is the text clients see.
type ReadError struct {
	Sensor string
	Err    error
}

func (e *ReadError) Error() string {
	return e.Err.Error()
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Result holds either a Reading or the *ReadError that prevented it.
type Result struct {
	Reading Reading
	Err     *ReadError
}

func (r Result) OK() bool {
	return r.Err == nil
}

// Measure takes one reading from s. Any failure, a driver panic included,
// comes back as Result.Err.
func Measure(s Sensor) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = Result{Err: &ReadError{Sensor: s.Name(), Err: fmt.Errorf("%v", p)}}
		}
	}()

	r, err := s.Read()
	if err != nil {
		return Result{Err: &ReadError{Sensor: s.Name(), Err: err}}
	}
	return Result{Reading: r}
}
