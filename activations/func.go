package activations

type function struct {
	name  string
	f, df func(float64) float64
}

type derivFunction struct {
	function
}

// Func wraps a pair of plain functions as an Activation. df may be nil, in which case the
// returned Activation has no analytic derivative and is differentiated numerically.
//
// The returned Activation is not registered; call Register for a network using it to be
// loadable by name.
func Func(name string, f, df func(float64) float64) Activation {
	fn := function{name, f, df}
	if df == nil {
		return fn
	}

	return derivFunction{fn}
}

func (t function) TypeString() string {
	return t.name
}

func (t function) Value(x float64) float64 {
	return t.f(x)
}

func (t derivFunction) Deriv(x float64) float64 {
	return t.df(x)
}
