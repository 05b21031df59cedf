// relus.go contains the activation functions that are derivative of relu:
// ReLU, Softplus and Softsign.

package activations

import (
	"math"
)

type relu int8

// ReLU returns the rectified linear unit, max(x, 0).
func ReLU() relu {
	return relu(0)
}

func (t relu) TypeString() string {
	return "relu"
}

func (t relu) Value(x float64) float64 {
	return math.Max(x, 0)
}

func (t relu) Deriv(x float64) float64 {
	if x > 0 {
		return 1
	}

	return 0
}

type softplus int8

// Softplus returns the smooth approximation of relu, ln(1 + e^x)
func Softplus() softplus {
	return softplus(0)
}

func (t softplus) TypeString() string {
	return "softplus"
}

func (t softplus) Value(x float64) float64 {
	return math.Log1p(math.Exp(x))
}

func (t softplus) Deriv(x float64) float64 {
	return 1.0 / (1 + math.Exp(-x))
}

type softsign int8

// Softsign returns x / (1 + |x|). It has no analytic derivative here, and is differentiated
// numerically.
func Softsign() softsign {
	return softsign(0)
}

func (t softsign) TypeString() string {
	return "softsign"
}

func (t softsign) Value(x float64) float64 {
	return x / (1 + math.Abs(x))
}
