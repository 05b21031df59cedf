package neuralpp

import (
	"github.com/blacklight/neuralpp/activations"
	"github.com/blacklight/neuralpp/initializers"
)

// Layer is a fixed-size, ordered group of Neurons sharing an activation function and threshold.
type Layer struct {
	neurons   []Neuron
	act       activations.Activation
	threshold float64
}

// NewLayer returns a Layer of size Neurons, each built with act and threshold. A nil act is
// replaced by the identity.
func NewLayer(size int, act activations.Activation, threshold float64) *Layer {
	if act == nil {
		act = activations.Identity()
	}

	l := &Layer{
		neurons:   make([]Neuron, size),
		act:       act,
		threshold: threshold,
	}

	for i := range l.neurons {
		l.neurons[i] = Neuron{act: act, threshold: threshold}
	}

	return l
}

// Size returns the number of Neurons in the Layer.
func (l *Layer) Size() int {
	return len(l.neurons)
}

// Threshold returns the threshold the Layer's Neurons were built with.
func (l *Layer) Threshold() float64 {
	return l.threshold
}

// At returns the Neuron at index i, which must be in [0, Size()).
func (l *Layer) At(i int) (*Neuron, error) {
	if i < 0 || i >= len(l.neurons) {
		return nil, IndexError{i, len(l.neurons)}
	}

	return &l.neurons[i], nil
}

// Link fully connects previous to l: one synapse for each pair of a Neuron in previous and a
// Neuron in l, with its weight drawn from rng. The synapses are appended to the arena in order
// of source, then destination, and the extended arena is returned.
func (l *Layer) Link(previous *Layer, synapses []Synapse, rng initializers.RNG) []Synapse {
	for i := range previous.neurons {
		src := &previous.neurons[i]
		for j := range l.neurons {
			idx := len(synapses)
			synapses = append(synapses, RandomSynapse(i, j, rng))

			src.out = append(src.out, idx)
			l.neurons[j].in = append(l.neurons[j].in, idx)
		}
	}

	return synapses
}

// SetInput sets both the propagation value and the activation of each Neuron to the matching
// value, for a Layer that receives the Network's inputs. On a length mismatch no Neuron is
// changed.
func (l *Layer) SetInput(values []float64) error {
	if len(values) != len(l.neurons) {
		return SizeMismatchError{len(l.neurons), len(values), "inputs"}
	}

	for i, v := range values {
		l.neurons[i].prop = v
		l.neurons[i].actv = v
	}

	return nil
}

// Propagate recomputes each Neuron from previous: the weighted input sum minus the threshold
// becomes the propagation value, and the activation function of it the activation.
func (l *Layer) Propagate(previous *Layer, synapses []Synapse) {
	for i := range l.neurons {
		n := &l.neurons[i]
		n.prop = n.Propagate(synapses, previous) - n.threshold
		n.actv = n.act.Value(n.prop)
	}
}

// Activations returns a copy of the activation of each Neuron, in order.
func (l *Layer) Activations() []float64 {
	vs := make([]float64, len(l.neurons))
	for i := range l.neurons {
		vs[i] = l.neurons[i].actv
	}

	return vs
}

// Propagations returns a copy of the propagation value of each Neuron, in order.
func (l *Layer) Propagations() []float64 {
	vs := make([]float64, len(l.neurons))
	for i := range l.neurons {
		vs[i] = l.neurons[i].prop
	}

	return vs
}

// SynClear drops the synapse references of every Neuron in the Layer.
func (l *Layer) SynClear() {
	for i := range l.neurons {
		l.neurons[i].SynClear()
	}
}
