// Package costfuncs measures how far a network's outputs are from their targets.
package costfuncs

import (
	"gonum.org/v1/gonum/floats"
)

// CostFunction compares output and target vectors of equal length.
type CostFunction interface {
	TypeString() string

	// Cost returns the total error of the outputs.
	Cost(outs, targets []float64) float64

	// Derivs returns the partial derivative of Cost with respect to each output.
	Derivs(outs, targets []float64) []float64
}

type halfSquared struct{}

// HalfSquaredError returns the cost function ½·Σ(out - target)², whose derivative with respect
// to each output is simply (out - target). Neither Cost nor Derivs modify their arguments.
func HalfSquaredError() CostFunction {
	return halfSquared{}
}

func (halfSquared) TypeString() string {
	return "half-squared-error"
}

func (halfSquared) Cost(outs, targets []float64) float64 {
	d := make([]float64, len(outs))
	floats.SubTo(d, outs, targets)
	return 0.5 * floats.Dot(d, d)
}

func (halfSquared) Derivs(outs, targets []float64) []float64 {
	d := make([]float64, len(outs))
	floats.SubTo(d, outs, targets)
	return d
}
