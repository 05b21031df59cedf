package neuralpp

import (
	"go.uber.org/zap"

	"github.com/blacklight/neuralpp/activations"
)

// Update trains the Network on its current input and expected outputs for the full epoch
// budget. Each epoch runs a backward pass that sets the delta of every synapse, commits the
// deltas to the weights, then propagates again.
//
// Update requires the Network to have been propagated since its input was last set, returning
// ErrNotPropagated otherwise, and returns ErrNoExpected if no expected outputs have been set.
func (net *Network) Update() error {
	if net.stat < Propagated {
		return ErrNotPropagated
	} else if len(net.expected) != net.output.Size() {
		return ErrNoExpected
	}

	net.remaining = net.epochs
	for net.remaining > 0 {
		net.backward(net.epochs - net.remaining)
		net.commit()
		net.propagate()

		net.remaining--
	}

	net.stat = Trained

	if ce := net.logger.Check(zap.DebugLevel, "updated network"); ce != nil {
		cost, _ := net.Cost(net.expected)
		ce.Write(zap.Int("epochs", net.epochs), zap.Float64("cost", cost))
	}

	return nil
}

// backward sets the pending delta of every synapse. Deltas are computed from the weights as
// they were at the start of the epoch.
func (net *Network) backward(elapsed int) {
	var mom float64
	if elapsed > 0 {
		mom = momentum(net.epochs, elapsed)
	}

	// error signal at each output neuron: dCost/dActv * f'(prop)
	outErrs := net.cost.Derivs(net.output.Activations(), net.expected)
	for o := range net.output.neurons {
		n := &net.output.neurons[o]
		outErrs[o] *= activations.Derivative(net.act, n.prop)

		for _, idx := range n.in {
			s := &net.synapses[idx]
			d := -net.learningRate * outErrs[o] * net.hidden.neurons[s.source].actv
			s.SetDelta(d + mom*s.prevDelta)
		}
	}

	for h := range net.hidden.neurons {
		n := &net.hidden.neurons[h]

		// Dk for this hidden neuron alone; with a single output it is the shared scalar
		var dk float64
		for _, idx := range n.out {
			s := &net.synapses[idx]
			dk += outErrs[s.destination] * s.weight
		}

		grad := dk * activations.Derivative(net.act, n.prop)
		for _, idx := range n.in {
			s := &net.synapses[idx]
			d := -net.learningRate * grad * net.input.neurons[s.source].actv
			s.SetDelta(d + mom*s.prevDelta)
		}
	}
}

func (net *Network) commit() {
	for i := range net.synapses {
		net.synapses[i].Commit()
		net.synapses[i].EndEpoch()
	}
}
