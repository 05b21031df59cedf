// Package initializers provides the random sources used to set the initial weights of a
// network's synapses. Each RNG owns its *rand.Rand, so a network seeded once at construction
// produces the same weights on every run.
package initializers

import (
	"math"
	"math/rand"
	"time"
)

// RNG needs no explanation
type RNG interface {
	Gen() float64
}

// NewSource returns a rand.Source seeded with the given value. A seed of 0 is replaced by the
// current time, for callers with no preference.
func NewSource(seed int64) rand.Source {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return rand.NewSource(seed)
}

type uniform struct {
	r            *rand.Rand
	lower, upper float64
}

// Uniform returns RNG that gives values uniformly spread over [0, 1), drawn from src. The
// bounds can be changed by Bounds.
func Uniform(src rand.Source) *uniform {
	return &uniform{rand.New(src), 0, 1}
}

// Bounds sets the range of a Uniform RNG, returning it. The bounds are swapped if given in the
// wrong order.
func (u *uniform) Bounds(lower, upper float64) *uniform {
	if lower > upper {
		lower, upper = upper, lower
	}

	u.lower = lower
	u.upper = upper
	return u
}

// Gen is the implementation of RNG for Uniform. It returns a random number.
func (u *uniform) Gen() float64 {
	return u.r.Float64()*(u.upper-u.lower) + u.lower
}

type absSine struct {
	r *rand.Rand
}

// AbsSine returns an RNG giving |sin(n)| for a random integer n. Values always lie in [0, 1],
// but are not uniformly spread: they gather near 1.
func AbsSine(src rand.Source) absSine {
	return absSine{rand.New(src)}
}

// Gen is the implementation of RNG for AbsSine.
func (a absSine) Gen() float64 {
	return math.Abs(math.Sin(float64(a.r.Int31())))
}

type normal struct {
	r    *rand.Rand
	µ, σ float64
}

// Normal returns an RNG that gives values within a normal distribution, with mean 0 and
// standard deviation 1. The center and standard deviation can be set by Mean and SD,
// respectively.
func Normal(src rand.Source) *normal {
	return &normal{rand.New(src), 0, 1}
}

// SD sets the value of the standard deviation of the normal distribution.
func (n *normal) SD(sd float64) *normal {
	n.σ = sd
	return n
}

// Mean sets the center of the normal distribution.
func (n *normal) Mean(mean float64) *normal {
	n.µ = mean
	return n
}

// Gen is the implementation of RNG for Normal. It returns a random number.
func (n *normal) Gen() float64 {
	return n.r.NormFloat64()*n.σ + n.µ
}

type constant float64

// Constant returns an RNG that always gives the same value. It is mostly useful for tests.
func Constant(v float64) constant {
	return constant(v)
}

func (c constant) Gen() float64 {
	return float64(c)
}
