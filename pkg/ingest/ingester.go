package ingest

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Ali-khavanin/tse-client/pkg/common"
	"github.com/Ali-khavanin/tse-client/pkg/datasource"
	"github.com/Ali-khavanin/tse-client/pkg/utility"
)

var ErrTooManyMalformed = errors.New("too many malformed lines")

type Result struct {
	BatchID     utility.BatchID
	Instruments []common.Instrument
	Lines       int
	Skipped     int
	Duration    time.Duration
}

func (r Result) Fields() []zap.Field {
	return []zap.Field{
		zap.Int("lines", r.Lines),
		zap.Int("instruments", len(r.Instruments)),
		zap.Int("skipped", r.Skipped),
		zap.Duration("duration", r.Duration),
	}
}

// Ingester pulls lines from a source, decodes them and hands every decoded
// instrument to the configured sinks.
type Ingester struct {
	logger  *zap.Logger
	decoder *common.Decoder

	policy    Policy
	maxErrors int
	sinks     []Sink
}

func NewIngester(logger *zap.Logger, decoder *common.Decoder, opts ...Option) *Ingester {
	if logger == nil {
		logger = zap.NewNop()
	}
	if decoder == nil {
		decoder = common.NewDecoder()
	}
	i := &Ingester{
		logger:  logger,
		decoder: decoder,
		policy:  FailFast,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Run consumes src until it is exhausted. The returned Result holds the
// instruments decoded so far even when an error is returned.
func (i *Ingester) Run(ctx context.Context, src datasource.Source) (Result, error) {
	result := Result{BatchID: utility.NewBatchID()}
	logger := i.logger.With(zap.Stringer("batch_id", result.BatchID), zap.Stringer("policy", i.policy))

	start := time.Now()
	err := i.consume(ctx, logger, src, &result)
	result.Duration = time.Since(start)

	if err != nil {
		logger.Error("ingest aborted", append(result.Fields(), zap.Error(err))...)
		return result, err
	}
	logger.Info("ingest finished", result.Fields()...)
	return result, nil
}

func (i *Ingester) consume(ctx context.Context, logger *zap.Logger, src datasource.Source, result *Result) error {
	for {
		line, err := src.Next(ctx)
		if errors.Is(err, datasource.ErrEof) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("error reading line %d: %w", result.Lines+1, err)
		}
		result.Lines++

		inst, err := i.decoder.Decode(line)
		if err != nil {
			if i.policy == FailFast {
				return fmt.Errorf("line %d: %w", result.Lines, err)
			}
			result.Skipped++
			logger.Warn("skipping malformed line", zap.Int("line", result.Lines), zap.Error(err))
			if i.maxErrors > 0 && result.Skipped > i.maxErrors {
				return fmt.Errorf("%w: %d of %d lines", ErrTooManyMalformed, result.Skipped, result.Lines)
			}
			continue
		}

		for _, sink := range i.sinks {
			if err := sink.Store(ctx, inst); err != nil {
				return fmt.Errorf("error storing instrument %d from line %d: %w", inst.InsCode, result.Lines, err)
			}
		}

		logger.Debug("instrument decoded", inst.Fields()...)
		result.Instruments = append(result.Instruments, inst)
	}
}
