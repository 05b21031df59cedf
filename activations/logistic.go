package activations

import (
	"math"
)

type logistic int8

// Logistic returns the logistic sigmoid, 1 / (1 + e^-x), computed through tanh for stability.
func Logistic() logistic {
	return logistic(0)
}

func (t logistic) TypeString() string {
	return "logistic"
}

func (t logistic) Value(x float64) float64 {
	return 0.5 + 0.5*math.Tanh(0.5*x)
}

func (t logistic) Deriv(x float64) float64 {
	v := t.Value(x)
	return v * (1 - v)
}

type tanh int8

// Tanh returns the hyperbolic tangent activation.
func Tanh() tanh {
	return tanh(0)
}

func (t tanh) TypeString() string {
	return "tanh"
}

func (t tanh) Value(x float64) float64 {
	return math.Tanh(x)
}

func (t tanh) Deriv(x float64) float64 {
	return 1 - math.Pow(math.Tanh(x), 2)
}
