package calculator

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// linspace 与 floats.Span 相同，两端点严格等于 l 和 u
func linspace(n int, l, u float64) []float64 {
	x := floats.Span(make([]float64, n), l, u)
	x[0], x[n-1] = l, u
	return x
}

// nearestIndex positions 中与 pos 距离最近的下标，距离相同时取较小的下标
func nearestIndex(positions []float64, pos float64, diff []float64) int {
	for i, p := range positions {
		diff[i] = math.Abs(p - pos)
	}
	return floats.MinIdx(diff[:len(positions)])
}
