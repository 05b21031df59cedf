package cliutils

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"

	"github.com/blacklight/neuralpp"
)

// retryDelay is the pause before training starts over.
const retryDelay = time.Millisecond

// Train trains net on data. Whenever the outputs become non-finite, the network is relinked
// with fresh weights and the whole set trained again, at most retries more times. Other errors
// are returned at once.
func Train(ctx context.Context, net *neuralpp.Network, data []neuralpp.Datum, retries int, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	if retries < 0 {
		retries = 0
	}

	attempt := 0
	b := retry.WithMaxRetries(uint64(retries), retry.NewConstant(retryDelay))
	return retry.Do(ctx, b, func(ctx context.Context) error {
		if attempt > 0 {
			net.Link()
		}
		attempt++

		err := net.Train(data)

		var nf *neuralpp.NonFiniteError
		if errors.As(err, &nf) {
			logger.Warn("training diverged", zap.Int("attempt", attempt), zap.Int("example", nf.Example),
				zap.Float64s("outputs", nf.Outputs))
			return retry.RetryableError(err)
		}

		return err
	})
}

// TrainFile is Train with the examples of the training document at path.
func TrainFile(ctx context.Context, net *neuralpp.Network, path string, retries int, logger *zap.Logger) error {
	data, err := neuralpp.LoadTrainingSet(path)
	if err != nil {
		return err
	}

	return Train(ctx, net, data, retries, logger)
}
