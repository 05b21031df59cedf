// Package climanager reads answers to simple prompts from an interactive session.
//
// Every query treats "quit" or "q" as the user giving up, which is reported by the boolean
// return value rather than as an error.
package climanager

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrInputEnded is returned once the input runs out before a valid answer is given.
var ErrInputEnded = errors.New("Input ended before a valid answer was given")

// Prompter writes prompts to one stream and reads answers, a line each, from another.
type Prompter struct {
	sc *bufio.Scanner
	w  io.Writer
}

// New returns a Prompter reading from r. If w is nil, prompts and hints are not written.
func New(r io.Reader, w io.Writer) *Prompter {
	if w == nil {
		w = io.Discard
	}

	return &Prompter{bufio.NewScanner(r), w}
}

// next returns the next trimmed line, or quit if the user asked to.
func (p *Prompter) next() (string, bool, error) {
	if !p.sc.Scan() {
		if err := p.sc.Err(); err != nil {
			return "", false, errors.Wrapf(err, "Failed to read answer")
		}

		return "", false, ErrInputEnded
	}

	text := strings.TrimSpace(p.sc.Text())
	return text, text == "quit" || text == "q", nil
}

// TF asks a yes or no question, returning the answer. Anything other than "y", "yes", "n" or
// "no" is asked again.
func (p *Prompter) TF(prompt string) (answer bool, quit bool, err error) {
	fmt.Fprint(p.w, prompt)
	for {
		text, quit, err := p.next()
		if err != nil || quit {
			return false, quit, err
		}

		switch text {
		case "y", "yes":
			return true, false, nil
		case "n", "no":
			return false, false, nil
		}

		fmt.Fprint(p.w, "Please enter 'y' or 'n': ")
	}
}

// Float asks for a floating-point number. If isValid is not nil, it returns a message for values
// out of bounds, which is printed before asking again; an empty message accepts the value.
func (p *Prompter) Float(prompt string, isValid func(float64) string) (float64, bool, error) {
	fmt.Fprint(p.w, prompt)
	for {
		text, quit, err := p.next()
		if err != nil || quit {
			return 0, quit, err
		}

		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			fmt.Fprint(p.w, "Please enter a number: ")
			continue
		}

		if isValid != nil {
			if msg := isValid(v); msg != "" {
				fmt.Fprint(p.w, msg)
				continue
			}
		}

		return v, false, nil
	}
}

// Floats asks for n numbers in turn, using the prompt with the 1-based position of each, as in
// "Number %d: ".
func (p *Prompter) Floats(prompt string, n int) ([]float64, bool, error) {
	vs := make([]float64, n)
	for i := range vs {
		v, quit, err := p.Float(fmt.Sprintf(prompt, i+1), nil)
		if err != nil || quit {
			return nil, quit, err
		}

		vs[i] = v
	}

	return vs, false, nil
}
