// Package activations provides the activation functions a network applies to the propagation
// value of its hidden and output neurons. Each function has a unique name (its TypeString) so
// that a saved network can name the function it was trained with.
package activations

import (
	"gonum.org/v1/gonum/diff/fd"
)

// Activation is the nonlinearity applied to a neuron's propagation value.
type Activation interface {
	// TypeString returns the name the Activation is registered and saved under. For example,
	// Identity returns "identity".
	TypeString() string

	// Value returns f(x).
	Value(float64) float64
}

// Deriver is implemented by Activations that provide an analytic derivative. Activations that
// don't are differentiated numerically by Derivative.
type Deriver interface {
	// Deriv returns f'(x), given x (the propagation value, not the activation).
	Deriv(float64) float64
}

// DerivStep is the step used for the forward finite difference.
const DerivStep float64 = 1e-6

var forward = &fd.Settings{
	Formula: fd.Forward,
	Step:    DerivStep,
}

// Derivative returns f'(x) for the given Activation. If a implements Deriver, its analytic
// derivative is used; otherwise the derivative is approximated by (f(x+h) - f(x)) / h.
func Derivative(a Activation, x float64) float64 {
	if d, ok := a.(Deriver); ok {
		return d.Deriv(x)
	}

	return fd.Derivative(a.Value, x, forward)
}
