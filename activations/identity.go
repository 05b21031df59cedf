package activations

type identity int8

// Identity returns the activation f(x) = x, with f'(x) = 1. It is the default Activation.
func Identity() identity {
	return identity(0)
}

func (t identity) TypeString() string {
	return "identity"
}

func (t identity) Value(x float64) float64 {
	return x
}

func (t identity) Deriv(x float64) float64 {
	return 1
}
