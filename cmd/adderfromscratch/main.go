// Command adderfromscratch trains a 2-2-2 network from a training document built in memory,
// then asks for two numbers and prints both outputs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/blacklight/neuralpp"
	"github.com/blacklight/neuralpp/climanager"
	"github.com/blacklight/neuralpp/cliutils"
)

// the second output is the difference of the inputs
var sets = []string{"3,2;5,1", "4,2;6,2", "6,3;9,3"}

func main() {
	seed := flag.Int64("seed", 0, "seed for the initial weights; 0 seeds from the clock")
	epochs := flag.Int("epochs", 100, "epochs per training example")
	level := flag.String("log", "info", "log level")
	flag.Parse()

	if err := run(*seed, *epochs, *level); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(seed int64, epochs int, level string) error {
	logger, err := cliutils.NewLogger(level)
	if err != nil {
		return err
	}
	defer logger.Sync()

	doc := neuralpp.NewTrainingDocument()
	for i, set := range sets {
		if err := neuralpp.AppendSet(doc, i, set); err != nil {
			return err
		}
	}

	xml, err := neuralpp.TrainingDocumentString(doc)
	if err != nil {
		return err
	}
	fmt.Println(xml)

	data, err := neuralpp.ParseTrainingSet(xml)
	if err != nil {
		return err
	}

	opts := []neuralpp.Option{neuralpp.WithLogger(logger)}
	if seed != 0 {
		opts = append(opts, neuralpp.WithSeed(seed))
	}

	net, err := neuralpp.New(2, 2, 2, 0.005, epochs, opts...)
	if err != nil {
		return err
	}

	if err := cliutils.Train(context.Background(), net, data, 10, logger); err != nil {
		return err
	}
	fmt.Println("Network status: trained")

	in, quit, err := climanager.New(os.Stdin, os.Stdout).Floats("Number %d to add: ", 2)
	if err != nil || quit {
		return err
	}

	if err := net.SetInput(in); err != nil {
		return err
	}

	net.Propagate()
	out := net.Outputs()
	fmt.Printf("Output: %v; %v\n", out[0], out[1])
	return nil
}
