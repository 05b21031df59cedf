// Package neuralpp provides a small, three-layer feed-forward neural network trained by
// backpropagation with momentum, and an exact saved form of its trained state.
//
// # Creating Networks
//
// A Network has exactly one input, one hidden and one output layer, all fully connected:
//
//	net, err := neuralpp.New(2, 2, 1, 0.005, 2000)
//	if err != nil {
//		return err
//	}
//
// The arguments are the three layer sizes, the learning rate and the number of epochs each
// Update runs for. Options set the rest: WithThreshold, WithActivation (see the subpackage
// "activations"), WithSeed or WithRNG for the initial weights (see "initializers"), and
// WithLogger.
//
// # Training
//
// A single training step sets the input, propagates, sets the expected outputs and updates:
//
//	net.SetInput([]float64{2, 3})
//	net.Propagate()
//	net.SetExpectedValue(5)
//	err = net.Update()
//
// TrainExample does those four steps for a Datum, and Train does them for a list. Training
// documents hold many examples; they can be built from the compact form "2,3;5" with AppendSet,
// written with WriteTrainingSet and trained on with TrainFile.
//
// If the outputs stop being finite during training, a *NonFiniteError is returned. The Network
// does not retry on its own; relinking with Link and training again is up to the caller.
//
// # Saving and Loading
//
//	err = net.Save("adder.xml")
//	net, err = neuralpp.Load("adder.xml")
//
// Errors reading or writing the file are *IOError; a file that does not hold a valid saved
// network gives *FormatError.
package neuralpp
