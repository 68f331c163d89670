package ingest

import (
	"context"

	"github.com/Ali-khavanin/tse-client/pkg/common"
)

type Sink interface {
	Store(ctx context.Context, inst common.Instrument) error
}

type SinkFunc func(ctx context.Context, inst common.Instrument) error

func (f SinkFunc) Store(ctx context.Context, inst common.Instrument) error {
	return f(ctx, inst)
}
