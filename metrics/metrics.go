// Package metrics derives feels-like values from a temperature/humidity pair.
//
// All inputs are in °C and %RH. Nothing is range checked: values outside what
// a sensor can report still produce a number.
package metrics

import "math"

// Rothfusz regression coefficients for °C input.
const (
	c1 = -8.78469475556
	c2 = 1.61139411
	c3 = 2.33854883889
	c4 = -0.14611605
	c5 = -0.012308094
	c6 = -0.0164248277778
	c7 = 0.002211732
	c8 = 0.00072546
	c9 = -0.000003582
)

// Magnus coefficients.
const (
	magnusA = 17.27
	magnusB = 237.7
)

type Derived struct {
	HeatIndexC float64
	DewPointC  float64
}

func Derive(tempC, humidity float64) Derived {
	return Derived{
		HeatIndexC: HeatIndex(tempC, humidity),
		DewPointC:  DewPoint(tempC, humidity),
	}
}

// HeatIndex returns the feels-like temperature in °C, rounded to 2 decimals.
func HeatIndex(t, h float64) float64 {
	hi := c1 +
		c2*t +
		c3*h +
		c4*t*h +
		c5*t*t +
		c6*h*h +
		c7*t*t*h +
		c8*t*h*h +
		c9*t*t*h*h
	return Round2(hi)
}

// DewPoint returns the dew point in °C, rounded to 2 decimals.
//
// The humidity term is the linear fraction h/100, not ln(h/100) as in the
// textbook Magnus form.
func DewPoint(t, h float64) float64 {
	alpha := (magnusA*t)/(magnusB+t) + h/100.0
	return Round2((magnusB * alpha) / (magnusA - alpha))
}

// Fahrenheit converts a °C value and rounds the result to 2 decimals.
func Fahrenheit(c float64) float64 {
	return Round2(c*9/5 + 32)
}

func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
