// Command learnadd writes a training document of sums, trains a network on it and saves the
// trained network for doadd.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/blacklight/neuralpp"
	"github.com/blacklight/neuralpp/cliutils"
)

func main() {
	configPath := flag.String("config", "", "YAML configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := cliutils.LoadConfig(configPath)
	if err != nil {
		return err
	}

	logger, err := cliutils.NewLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	data, err := cfg.Training.Datums()
	if err != nil {
		return err
	}

	if err := neuralpp.WriteTrainingSet(cfg.Training.File, data); err != nil {
		return err
	}
	logger.Info("wrote training document", zap.String("path", cfg.Training.File), zap.Int("sets", len(cfg.Training.Sets)))

	net, err := cfg.Network.NewNetwork(logger)
	if err != nil {
		return err
	}

	if err := cliutils.TrainFile(context.Background(), net, cfg.Training.File, cfg.Training.Retries, logger); err != nil {
		return err
	}

	fmt.Println("Network status: trained")
	return net.Save(cfg.Output)
}
