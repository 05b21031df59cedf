// Command doadd loads a network saved by learnadd and asks for numbers to add with it.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/blacklight/neuralpp"
	"github.com/blacklight/neuralpp/climanager"
	"github.com/blacklight/neuralpp/cliutils"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	netPath := flag.String("net", "", "saved network; defaults to the configured output")
	flag.Parse()

	if err := run(*configPath, *netPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, netPath string) error {
	cfg, err := cliutils.LoadConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := cliutils.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	if netPath == "" {
		netPath = cfg.Output
	}

	net, err := neuralpp.Load(netPath, neuralpp.WithLogger(logger))
	if err != nil {
		return err
	}

	p := climanager.New(os.Stdin, os.Stdout)
	for {
		in, quit, err := p.Floats("Number %d to add: ", net.InputSize())
		if err != nil || quit {
			return err
		}

		if err := net.SetInput(in); err != nil {
			return err
		}

		net.Propagate()
		fmt.Println("Neural net output:", net.Output())

		again, quit, err := p.TF("Add more? (y/n) ")
		if err != nil || quit || !again {
			return err
		}
	}
}
