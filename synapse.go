package neuralpp

import (
	"github.com/blacklight/neuralpp/initializers"
)

// Beta0 is the momentum coefficient at the start of training. Momentum decays from Beta0
// toward zero as epochs elapse.
const Beta0 float64 = 0.7

// Synapse is a weighted edge between a neuron in one layer and a neuron in the next. Synapses
// live in the arena owned by their Network; neurons refer to them by index.
//
// Source and Destination are the indices of the connected neurons within their own layers.
type Synapse struct {
	weight    float64
	delta     float64
	prevDelta float64

	source, destination int
}

// NewSynapse returns a Synapse with the given endpoints and weight, and no pending change.
func NewSynapse(source, destination int, weight float64) Synapse {
	return Synapse{weight: weight, source: source, destination: destination}
}

// RandomSynapse is like NewSynapse, but draws the weight from rng.
func RandomSynapse(source, destination int, rng initializers.RNG) Synapse {
	return NewSynapse(source, destination, rng.Gen())
}

func (s *Synapse) Weight() float64 { return s.weight }
func (s *Synapse) SetWeight(w float64) { s.weight = w }
func (s *Synapse) Delta() float64 { return s.delta }
func (s *Synapse) PrevDelta() float64 { return s.prevDelta }
func (s *Synapse) Source() int { return s.source }
func (s *Synapse) Destination() int { return s.destination }

// SetDelta sets the pending change to the weight. PrevDelta is left alone; use EndEpoch to
// move on to the next epoch.
func (s *Synapse) SetDelta(d float64) {
	s.delta = d
}

// Commit adds the pending delta to the weight. The delta itself is kept until EndEpoch.
func (s *Synapse) Commit() {
	s.weight += s.delta
}

// EndEpoch remembers the pending delta as the previous one and clears it.
func (s *Synapse) EndEpoch() {
	s.prevDelta = s.delta
	s.delta = 0
}

// Momentum returns the share of the previous delta blended into the current one, after
// epochsElapsed of totalEpochs epochs:
//
//	Beta0 * N / (20x + N)
//
// It is exactly Beta0 when no epochs have elapsed, and zero if totalEpochs is not positive.
func (s *Synapse) Momentum(totalEpochs, epochsElapsed int) float64 {
	return momentum(totalEpochs, epochsElapsed)
}

func momentum(total, elapsed int) float64 {
	if total <= 0 {
		return 0
	}

	n := float64(total)
	return (Beta0 * n) / (20*float64(elapsed) + n)
}
