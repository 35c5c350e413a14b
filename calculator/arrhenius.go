package calculator

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Arrhenius 图横轴为 1e4/T(K)
const (
	DefaultArrheniusLow  = 6.0
	DefaultArrheniusHigh = 10.0
	ArrheniusPoints      = 100

	celsiusToKelvin = 273.15
)

// Line X 为 1e4/T，Y 为 log10(D)
type Line struct {
	X         []float64 `json:"x"`
	Y         []float64 `json:"y"`
	Slope     float64   `json:"slope"`
	Intercept float64   `json:"intercept"`
}

func InverseTemperature(celsius float64) float64 {
	return 1e4 / (celsius + celsiusToKelvin)
}

// ArrheniusLine log10(D) 对 1e4/T 做一次最小二乘拟合，在 [low, high] 上取 100 个点
func ArrheniusLine(celsius, logD []float64, low, high float64) (Line, error) {
	if len(celsius) != len(logD) {
		return Line{}, fmt.Errorf("%w: %d temperatures, %d diffusivities", ErrLengthMismatch, len(celsius), len(logD))
	}
	if len(celsius) < 2 {
		return Line{}, fmt.Errorf("%w: at least two points needed for a line, got %d", ErrInvalidInput, len(celsius))
	}

	invT := make([]float64, len(celsius))
	for i, c := range celsius {
		invT[i] = InverseTemperature(c)
	}
	if floats.Max(invT) == floats.Min(invT) {
		return Line{}, fmt.Errorf("%w: all %d points share one temperature", ErrInvalidInput, len(celsius))
	}
	intercept, slope := stat.LinearRegression(invT, logD, nil, false)

	x := linspace(ArrheniusPoints, low, high)
	y := make([]float64, ArrheniusPoints)
	for i, xi := range x {
		y[i] = slope*xi + intercept
	}
	return Line{X: x, Y: y, Slope: slope, Intercept: intercept}, nil
}
