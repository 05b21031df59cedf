package initializers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUniformBounds(t *testing.T) {
	u := Uniform(NewSource(7))
	for i := 0; i < 1000; i++ {
		v := u.Gen()
		assert.True(t, v >= 0 && v < 1, "%v", v)
	}

	u.Bounds(3, -2)
	for i := 0; i < 1000; i++ {
		v := u.Gen()
		assert.True(t, v >= -2 && v < 3, "%v", v)
	}
}

func TestSeededSourcesRepeat(t *testing.T) {
	a, b := Uniform(NewSource(42)), Uniform(NewSource(42))
	for i := 0; i < 20; i++ {
		assert.Equal(t, a.Gen(), b.Gen())
	}

	s1, s2 := AbsSine(NewSource(3)), AbsSine(NewSource(3))
	for i := 0; i < 20; i++ {
		assert.Equal(t, s1.Gen(), s2.Gen())
	}
}

func TestAbsSineRange(t *testing.T) {
	g := AbsSine(NewSource(11))
	for i := 0; i < 1000; i++ {
		v := g.Gen()
		assert.True(t, v >= 0 && v <= 1, "%v", v)
	}
}

func TestNormalAndConstant(t *testing.T) {
	n := Normal(NewSource(5)).Mean(10).SD(0)
	assert.Equal(t, 10.0, n.Gen())

	assert.Equal(t, 0.25, Constant(0.25).Gen())
}
