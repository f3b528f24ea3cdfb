package discid

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"mbdiscid/internal/logging"
)

// Reader wraps a provider with logging and guarantees that read failures
// surface as *DiscError.
type Reader struct {
	provider Provider
	logger   *slog.Logger
}

// NewReader returns a Reader for provider. A nil logger discards records.
func NewReader(provider Provider, logger *slog.Logger) *Reader {
	return &Reader{
		provider: provider,
		logger:   logging.NewComponentLogger(logger, "reader"),
	}
}

// Provider returns the wrapped provider.
func (r *Reader) Provider() Provider {
	return r.provider
}

// Read performs a single read. There are no retries; callers decide whether
// to try again.
func (r *Reader) Read(ctx context.Context, device string) (string, error) {
	logger := r.logger.With(
		logging.String(logging.FieldDevice, device),
		logging.String(logging.FieldProvider, r.provider.Name()),
	)
	logger.Debug("reading disc id")

	start := time.Now()
	id, err := r.provider.Read(ctx, device)
	elapsed := time.Since(start)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return "", err
		}
		var discErr *DiscError
		if !errors.As(err, &discErr) {
			discErr = &DiscError{Provider: r.provider.Name(), Device: device, Message: err.Error(), Err: err}
		}
		logger.Debug("disc read failed",
			logging.String(logging.FieldEventType, "disc_read_failed"),
			logging.Error(err),
			logging.Duration("elapsed", elapsed),
		)
		return "", discErr
	}

	if id == "" {
		return "", &DiscError{Provider: r.provider.Name(), Device: device, Message: "provider returned an empty disc id"}
	}

	logger.Info("disc id read",
		logging.String(logging.FieldEventType, "disc_read"),
		logging.String("disc_id", id),
		logging.Duration("elapsed", elapsed),
	)
	return id, nil
}
