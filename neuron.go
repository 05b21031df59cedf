package neuralpp

import (
	"github.com/blacklight/neuralpp/activations"
)

// Neuron holds a single value in a Layer, alongside the indices of the synapses that connect
// it to its neighbors.
//
// The activation of a Neuron is not derived from its propagation value automatically; Layer
// does that when it propagates.
type Neuron struct {
	prop      float64
	actv      float64
	threshold float64
	act       activations.Activation

	// indices into the Network's synapse arena
	in  []int
	out []int
}

// NewNeuron returns a Neuron with the given activation function and threshold, and no synapses.
func NewNeuron(act activations.Activation, threshold float64) *Neuron {
	return &Neuron{act: act, threshold: threshold}
}

func (n *Neuron) Prop() float64 { return n.prop }
func (n *Neuron) SetProp(v float64) { n.prop = v }
func (n *Neuron) Actv() float64 { return n.actv }
func (n *Neuron) SetActv(v float64) { n.actv = v }
func (n *Neuron) Threshold() float64 { return n.threshold }
func (n *Neuron) NumIn() int { return len(n.in) }
func (n *Neuron) NumOut() int { return len(n.out) }

// Activation returns the function the Neuron's layer applies to its propagation value.
func (n *Neuron) Activation() activations.Activation {
	return n.act
}

// Incoming returns a copy of the arena indices of the synapses ending at the Neuron.
func (n *Neuron) Incoming() []int {
	return append([]int(nil), n.in...)
}

// Outgoing returns a copy of the arena indices of the synapses starting at the Neuron.
func (n *Neuron) Outgoing() []int {
	return append([]int(nil), n.out...)
}

// SynIn returns the arena index of the i-th incoming synapse.
func (n *Neuron) SynIn(i int) (int, error) {
	if i < 0 || i >= len(n.in) {
		return 0, IndexError{i, len(n.in)}
	}

	return n.in[i], nil
}

// SynOut returns the arena index of the i-th outgoing synapse.
func (n *Neuron) SynOut(i int) (int, error) {
	if i < 0 || i >= len(n.out) {
		return 0, IndexError{i, len(n.out)}
	}

	return n.out[i], nil
}

// Propagate returns the weighted sum of the activations feeding into the Neuron, reading the
// weights from synapses and the source activations from previous. A Neuron with no incoming
// synapses gives 0. The Neuron itself is not changed.
func (n *Neuron) Propagate(synapses []Synapse, previous *Layer) float64 {
	var sum float64
	for _, idx := range n.in {
		s := &synapses[idx]
		sum += s.weight * previous.neurons[s.source].actv
	}

	return sum
}

// SynClear drops every synapse reference of the Neuron.
func (n *Neuron) SynClear() {
	n.in = nil
	n.out = nil
}
