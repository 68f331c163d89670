package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/Ali-khavanin/tse-client/pkg/common"
	"github.com/Ali-khavanin/tse-client/pkg/data/db/psql"
	"github.com/Ali-khavanin/tse-client/pkg/data/duckdb"
	"github.com/Ali-khavanin/tse-client/pkg/datasource"
	"github.com/Ali-khavanin/tse-client/pkg/ingest"
)

type ingestCmd struct {
	cfg    Config
	logger *zap.Logger

	source    string
	skip      bool
	maxErrors int
	legacy    bool
	duckDB    string
	postgres  bool
}

func (*ingestCmd) Name() string     { return "ingest" }
func (*ingestCmd) Synopsis() string { return "decodes an instrument feed and stores the records" }
func (*ingestCmd) Usage() string {
	return `tsec ingest [-source file|http|ws] [-skip] [-max-errors n] [-duckdb dsn] [-psql] <path|url>

  Reads instrument rows from a file, an HTTP endpoint or a websocket stream,
  decodes them and stores them in DuckDB and/or PostgreSQL.

`
}

func (c *ingestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.source, "source", "file", "feed source: file, http or ws")
	f.BoolVar(&c.skip, "skip", false, "skip malformed lines instead of aborting")
	f.IntVar(&c.maxErrors, "max-errors", 0, "abort after this many skipped lines (0 = unlimited)")
	f.BoolVar(&c.legacy, "legacy", false, "accept the legacy 17 field layout")
	f.StringVar(&c.duckDB, "duckdb", c.cfg.DuckDB, "DuckDB database file")
	f.BoolVar(&c.postgres, "psql", false, "also store into PostgreSQL (TSEC_PG_* settings)")
}

func (c *ingestCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if err := c.run(ctx, f.Arg(0)); err != nil {
		c.logger.Error("ingest failed", zap.Error(err))
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *ingestCmd) run(ctx context.Context, target string) error {
	src, err := c.openSource(ctx, target)
	if err != nil {
		return err
	}
	defer func() {
		_ = src.Close()
	}()

	opts := []ingest.Option{ingest.WithMaxErrors(c.maxErrors)}
	if c.skip {
		opts = append(opts, ingest.WithPolicy(ingest.SkipMalformed))
	}

	if c.duckDB != "" {
		w := duckdb.NewWriter(c.duckDB)
		if err := w.Connect(ctx); err != nil {
			return fmt.Errorf("error connecting to duckdb: %w", err)
		}
		defer w.Close()
		opts = append(opts, ingest.WithSink(w))
	}

	if c.postgres {
		db, err := psql.Connect(ctx, c.cfg.PGHost, c.cfg.PGPort, c.cfg.PGUser, c.cfg.PGPassword, c.cfg.PGDatabase)
		if err != nil {
			return fmt.Errorf("error connecting to postgres: %w", err)
		}
		defer func() {
			_ = db.Close()
		}()
		if err := psql.CreateSchema(ctx, db); err != nil {
			return fmt.Errorf("error creating postgres schema: %w", err)
		}
		opts = append(opts, ingest.WithSink(psql.NewStore(db)))
	}

	var decoderOpts []common.DecoderOption
	if c.legacy {
		decoderOpts = append(decoderOpts, common.WithLegacyFieldCount())
	}

	_, err = ingest.NewIngester(c.logger, common.NewDecoder(decoderOpts...), opts...).Run(ctx, src)
	return err
}

func (c *ingestCmd) openSource(ctx context.Context, target string) (datasource.Source, error) {
	switch c.source {
	case "file":
		src := datasource.NewFileSource(target)
		if err := src.Open(); err != nil {
			return nil, err
		}
		return src, nil
	case "http":
		return datasource.NewHTTPSource(&http.Client{Timeout: c.cfg.HTTPTimeout}, target), nil
	case "ws":
		src := datasource.NewWebsocketSource(target)
		if err := src.Connect(ctx); err != nil {
			return nil, err
		}
		return src, nil
	default:
		return nil, fmt.Errorf("unknown source %q", c.source)
	}
}
