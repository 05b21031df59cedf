package neuralpp

import (
	"math"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/blacklight/neuralpp/activations"
	"github.com/blacklight/neuralpp/costfuncs"
	"github.com/blacklight/neuralpp/initializers"
)

// State tracks how far a Network is through a training step. It is not persisted.
type State int8

const (
	Idle       State = iota // 0
	InputSet   State = iota // 1
	Propagated State = iota // 2
	Trained    State = iota // 3
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case InputSet:
		return "input-set"
	case Propagated:
		return "propagated"
	case Trained:
		return "trained"
	default:
		return "unknown"
	}
}

// Network is a fully connected feed-forward network with exactly three layers: input, hidden
// and output. It owns every Neuron and Synapse it uses, so separate Networks share nothing.
type Network struct {
	input, hidden, output *Layer

	// input->hidden synapses first, in order of source then destination, followed by the
	// hidden->output synapses in the same order
	synapses []Synapse

	learningRate float64
	epochs       int
	remaining    int
	threshold    float64

	act    activations.Activation
	cost   costfuncs.CostFunction
	rng    initializers.RNG
	logger *zap.Logger

	expected []float64
	stat     State
}

type options struct {
	threshold float64
	act       activations.Activation
	rng       initializers.RNG
	logger    *zap.Logger
}

// Option configures a Network at construction.
type Option func(*options)

// WithThreshold sets the threshold of every hidden and output Neuron. The default is 0.
func WithThreshold(t float64) Option {
	return func(o *options) { o.threshold = t }
}

// WithActivation sets the activation function used by the hidden and output layers. The default
// is activations.Identity().
func WithActivation(act activations.Activation) Option {
	return func(o *options) {
		if act != nil {
			o.act = act
		}
	}
}

// WithRNG sets the source of the synapse weights given by Link. The default is a uniform
// distribution over [0, 1), seeded from the clock.
func WithRNG(rng initializers.RNG) Option {
	return func(o *options) {
		if rng != nil {
			o.rng = rng
		}
	}
}

// WithSeed is like WithRNG with a uniform [0, 1) distribution seeded by seed, for repeatable
// weights.
func WithSeed(seed int64) Option {
	return WithRNG(initializers.Uniform(initializers.NewSource(seed)))
}

// WithLogger sets the logger for the Network. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// New returns a linked Network with the given layer sizes, learning rate and epoch budget.
//
// Every size must be at least 1 and the epoch budget must not be negative; the learning rate
// must be finite. Otherwise the returned error wraps ErrInvalidArgument.
func New(inSize, hiddenSize, outSize int, learningRate float64, epochs int, opts ...Option) (*Network, error) {
	if inSize < 1 || hiddenSize < 1 || outSize < 1 {
		return nil, errors.Wrapf(ErrInvalidArgument, "Layer sizes must be positive, got %d-%d-%d", inSize, hiddenSize, outSize)
	} else if epochs < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "Epoch budget must not be negative, got %d", epochs)
	} else if math.IsNaN(learningRate) || math.IsInf(learningRate, 0) {
		return nil, errors.Wrapf(ErrInvalidArgument, "Learning rate must be finite, got %v", learningRate)
	}

	o := options{act: activations.Identity()}
	for _, opt := range opts {
		opt(&o)
	}

	if o.rng == nil {
		o.rng = initializers.Uniform(initializers.NewSource(0))
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}

	net := &Network{
		// Input neurons are pass-through; they take neither threshold nor activation.
		input:  NewLayer(inSize, activations.Identity(), 0),
		hidden: NewLayer(hiddenSize, o.act, o.threshold),
		output: NewLayer(outSize, o.act, o.threshold),

		learningRate: learningRate,
		epochs:       epochs,
		remaining:    epochs,
		threshold:    o.threshold,

		act:    o.act,
		cost:   costfuncs.HalfSquaredError(),
		rng:    o.rng,
		logger: o.logger,
	}

	net.Link()
	return net, nil
}

// Link discards every synapse and fully connects input to hidden and hidden to output again,
// with fresh weights from the Network's RNG. Any propagated values are stale afterwards.
func (net *Network) Link() {
	net.input.SynClear()
	net.hidden.SynClear()
	net.output.SynClear()

	arena := make([]Synapse, 0, net.input.Size()*net.hidden.Size()+net.hidden.Size()*net.output.Size())
	arena = net.hidden.Link(net.input, arena, net.rng)
	arena = net.output.Link(net.hidden, arena, net.rng)
	net.synapses = arena

	if net.stat > InputSet {
		net.stat = InputSet
	}

	net.logger.Debug("linked network",
		zap.Int("input", net.input.Size()),
		zap.Int("hidden", net.hidden.Size()),
		zap.Int("output", net.output.Size()),
		zap.Int("synapses", len(net.synapses)),
	)
}

// SetInput sets the values of the input layer. If the number of values does not equal
// InputSize(), a SizeMismatchError is returned and nothing changes.
func (net *Network) SetInput(values []float64) error {
	if err := net.input.SetInput(values); err != nil {
		return err
	}

	net.stat = InputSet
	return nil
}

// Propagate runs the forward pass: first the hidden layer, then the output layer. Inputs that
// were never set count as zeros.
func (net *Network) Propagate() {
	net.propagate()
	net.stat = Propagated
}

func (net *Network) propagate() {
	net.hidden.Propagate(net.input, net.synapses)
	net.output.Propagate(net.hidden, net.synapses)
}

// SetExpected stores the target values for Update, one per output Neuron. A SizeMismatchError is
// returned if the number of values does not equal OutputSize().
func (net *Network) SetExpected(values []float64) error {
	if len(values) != net.output.Size() {
		return SizeMismatchError{net.output.Size(), len(values), "expected outputs"}
	}

	net.expected = append(net.expected[:0], values...)
	return nil
}

// SetExpectedValue is SetExpected for Networks with a single output.
func (net *Network) SetExpectedValue(v float64) error {
	if net.output.Size() != 1 {
		return SizeMismatchError{net.output.Size(), 1, "expected outputs"}
	}

	return net.SetExpected([]float64{v})
}

// Expected returns a copy of the target values, or nil if none have been set.
func (net *Network) Expected() []float64 {
	if net.expected == nil {
		return nil
	}

	return append([]float64(nil), net.expected...)
}

// Cost returns half the sum of the squared differences between the current outputs and targets.
func (net *Network) Cost(targets []float64) (float64, error) {
	if len(targets) != net.output.Size() {
		return 0, SizeMismatchError{net.output.Size(), len(targets), "targets"}
	}

	return net.cost.Cost(net.output.Activations(), targets), nil
}

// Output returns the activation of the first output Neuron.
func (net *Network) Output() float64 {
	return net.output.neurons[0].actv
}

// Outputs returns a copy of the activations of the output layer.
func (net *Network) Outputs() []float64 {
	return net.output.Activations()
}

// Finite returns whether every output is neither NaN nor infinite.
func (net *Network) Finite() bool {
	for i := range net.output.neurons {
		v := net.output.neurons[i].actv
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

func (net *Network) State() State { return net.stat }
func (net *Network) InputSize() int { return net.input.Size() }
func (net *Network) HiddenSize() int { return net.hidden.Size() }
func (net *Network) OutputSize() int { return net.output.Size() }
func (net *Network) LearningRate() float64 { return net.learningRate }
func (net *Network) Epochs() int { return net.epochs }
func (net *Network) Threshold() float64 { return net.threshold }
func (net *Network) Activation() activations.Activation { return net.act }

// EpochsRemaining returns the number of epochs left in the current or most recent Update. It
// is zero after an Update completes.
func (net *Network) EpochsRemaining() int {
	return net.remaining
}

// Layers returns the input, hidden and output layers of the Network. They are not copies.
func (net *Network) Layers() (input, hidden, output *Layer) {
	return net.input, net.hidden, net.output
}

// Synapses returns a copy of every synapse, input->hidden first. Within each set, synapses are
// ordered by source index, then destination index.
func (net *Network) Synapses() []Synapse {
	return append([]Synapse(nil), net.synapses...)
}

// SetWeight sets the weight of the synapse at index i of Synapses().
func (net *Network) SetWeight(i int, w float64) error {
	if i < 0 || i >= len(net.synapses) {
		return IndexError{i, len(net.synapses)}
	}

	net.synapses[i].weight = w
	return nil
}
