package neuralpp

import (
	"github.com/beevik/etree"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// TrainExample runs one training step on d: SetInput, Propagate, SetExpected, then Update.
//
// If the outputs are no longer finite afterwards, a *NonFiniteError is returned. Retrying is
// up to the caller, usually after relinking the Network.
func (net *Network) TrainExample(d Datum) error {
	return net.trainExample(-1, d)
}

func (net *Network) trainExample(index int, d Datum) error {
	if err := net.SetInput(d.Inputs); err != nil {
		return err
	}

	net.Propagate()

	if err := net.SetExpected(d.Outputs); err != nil {
		return err
	}

	if err := net.Update(); err != nil {
		return err
	}

	if !net.Finite() {
		return &NonFiniteError{index, net.Outputs()}
	}

	return nil
}

// Train runs TrainExample on each Datum in order, stopping at the first error. Every Datum is
// checked with Fits before training starts, so a badly sized set does not train partially.
func (net *Network) Train(data []Datum) error {
	for i, d := range data {
		if d.Fits(net) {
			continue
		}

		err := SizeMismatchError{net.InputSize(), len(d.Inputs), "inputs"}
		if len(d.Inputs) == net.InputSize() {
			err = SizeMismatchError{net.OutputSize(), len(d.Outputs), "expected outputs"}
		}

		return errors.Wrapf(err, "Training example %d (%v) does not fit a %d-%d-%d network",
			i, d, net.InputSize(), net.HiddenSize(), net.OutputSize())
	}

	for i, d := range data {
		if err := net.trainExample(i, d); err != nil {
			return errors.Wrapf(err, "Training example %d failed", i)
		}
	}

	net.logger.Debug("trained network", zap.Int("examples", len(data)))
	return nil
}

// TrainDocument trains the Network on the examples of a training document.
func (net *Network) TrainDocument(doc *etree.Document) error {
	data, err := ReadTrainingSet(doc)
	if err != nil {
		return err
	}

	return net.Train(data)
}

// TrainFile trains the Network on the examples of the training document at path.
func (net *Network) TrainFile(path string) error {
	data, err := LoadTrainingSet(path)
	if err != nil {
		return err
	}

	return net.Train(data)
}

// TrainString trains the Network on the examples of a training document given as a string.
func (net *Network) TrainString(xml string) error {
	data, err := ParseTrainingSet(xml)
	if err != nil {
		return err
	}

	return net.Train(data)
}
