package holiday

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// CompositeSource implements Source with fallback strategy
// Primary: HebcalSource (computed)
// Fallback: FileSource (local file)
type CompositeSource struct {
	primary  Source
	fallback Source
	logger   *zap.Logger
}

// NewCompositeSource creates a new CompositeSource
func NewCompositeSource(primary, fallback Source, logger *zap.Logger) *CompositeSource {
	return &CompositeSource{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Observances returns the primary observances, falling back when the
// primary fails or has nothing for the year
func (cs *CompositeSource) Observances(ctx context.Context, year int) ([]Observance, error) {
	observances, err := cs.primary.Observances(ctx, year)
	if err == nil && len(observances) > 0 {
		return observances, nil
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}

	cs.logger.Warn("Primary holiday source failed, falling back to file",
		zap.Int("year", year),
		zap.Int("observances", len(observances)),
		zap.Error(err))

	fallback, fallbackErr := cs.fallback.Observances(ctx, year)
	if fallbackErr != nil {
		if err != nil {
			return nil, fmt.Errorf("primary and fallback both failed: primary=%w, fallback=%v", err, fallbackErr)
		}
		return observances, nil
	}
	return fallback, nil
}

// LoadFallback loads the fallback source (if FileSource)
func (cs *CompositeSource) LoadFallback() error {
	if fs, ok := cs.fallback.(*FileSource); ok {
		if err := fs.Load(); err != nil {
			return fmt.Errorf("failed to load fallback holidays: %w", err)
		}
		cs.logger.Info("Fallback holidays loaded successfully")
	}
	return nil
}
