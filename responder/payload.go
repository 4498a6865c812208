package responder

import (
	"PicoWeather/device"
	"PicoWeather/metrics"
	"PicoWeather/sensor"
)

// ErrorMessage is the fixed "error" field of a failed reading.
const ErrorMessage = "Failed to read sensor"

// Payload is the body of a successful reading. Field order is the wire order.
type Payload struct {
	IP           string  `json:"ip"`
	Hostname     string  `json:"hostname"`
	MAC          string  `json:"mac"`
	TemperatureC float64 `json:"temperature_C"`
	TemperatureF float64 `json:"temperature_F"`
	Humidity     float64 `json:"humidity"`
	HeatIndexC   float64 `json:"heat_index_C"`
	HeatIndexF   float64 `json:"heat_index_F"`
	DewPointC    float64 `json:"dew_point_C"`
	DewPointF    float64 `json:"dew_point_F"`
}

type ErrorPayload struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

// NewPayload derives the metrics for r. Humidity is passed through as read;
// everything else numeric is rounded to 2 decimals.
func NewPayload(id device.Identity, r sensor.Reading) Payload {
	tc := metrics.Round2(r.Temperature)
	d := metrics.Derive(r.Temperature, r.Humidity)
	return Payload{
		IP:           id.IP,
		Hostname:     id.Hostname,
		MAC:          id.MAC,
		TemperatureC: tc,
		TemperatureF: metrics.Fahrenheit(tc),
		Humidity:     r.Humidity,
		HeatIndexC:   d.HeatIndexC,
		HeatIndexF:   metrics.Fahrenheit(d.HeatIndexC),
		DewPointC:    d.DewPointC,
		DewPointF:    metrics.Fahrenheit(d.DewPointC),
	}
}

func NewErrorPayload(err error) ErrorPayload {
	return ErrorPayload{Error: ErrorMessage, Details: err.Error()}
}
