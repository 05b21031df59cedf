package neuralpp

import (
	"fmt"
)

// Error is a wrapper for specific types of errors for which there is no additional information
// necessary. These errors are defined as global variables, and can be compared directly or with
// errors.Is.
type Error struct{ string }

func (err Error) Error() string {
	return err.string
}

// These are the global errors that may be returned.
var (
	ErrInvalidArgument = Error{"Invalid argument"}
	ErrNotPropagated   = Error{"Network has not been propagated since its input was set"}
	ErrNoExpected      = Error{"Network has no expected output values set"}
)

// SizeMismatchError documents a vector whose length does not match the layer it was given to.
// Vectors are never truncated or padded to fit.
type SizeMismatchError struct {
	Expected, Given int
	Name            string
}

func (err SizeMismatchError) Error() string {
	return fmt.Sprintf("Size mismatch for %s: expected %d values, got %d", err.Name, err.Expected, err.Given)
}

// IndexError is returned by bounds-checked element access. The valid range is [0, Size).
type IndexError struct {
	Index, Size int
}

func (err IndexError) Error() string {
	return fmt.Sprintf("Index %d out of range [0, %d)", err.Index, err.Size)
}

// FormatError marks a document, either a training set or a persisted network, whose content is
// malformed or structurally invalid. It is a data problem: retrying the same document will fail
// again.
type FormatError struct {
	// Source names the document, usually a path. May be empty for in-memory documents.
	Source string
	Reason string
	Err    error
}

func (err *FormatError) Error() string {
	var msg string
	if err.Source != "" {
		msg = fmt.Sprintf("Invalid document %q: %s", err.Source, err.Reason)
	} else {
		msg = "Invalid document: " + err.Reason
	}

	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}

	return msg
}

func (err *FormatError) Unwrap() error {
	return err.Err
}

// IOError marks a failure of the underlying storage: a file that is missing, unreadable or
// unwritable. It is kept distinct from FormatError.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (err *IOError) Error() string {
	if err.Path == "" {
		return fmt.Sprintf("Can't %s: %v", err.Op, err.Err)
	}

	return fmt.Sprintf("Can't %s %q: %v", err.Op, err.Path, err.Err)
}

func (err *IOError) Unwrap() error {
	return err.Err
}

// NonFiniteError is returned by training when the network output is NaN or infinite after a
// training pass. Whether to retry or abort is left to the caller.
type NonFiniteError struct {
	// Example is the index of the training example that produced the output, or -1.
	Example int
	Outputs []float64
}

func (err *NonFiniteError) Error() string {
	if err.Example < 0 {
		return fmt.Sprintf("Network output is not finite: %v", err.Outputs)
	}

	return fmt.Sprintf("Network output is not finite after training example %d: %v", err.Example, err.Outputs)
}

func formatErr(source, reason string, args ...interface{}) *FormatError {
	return &FormatError{Source: source, Reason: fmt.Sprintf(reason, args...)}
}
