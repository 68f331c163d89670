package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/Ali-khavanin/tse-client/pkg/common"
	"github.com/Ali-khavanin/tse-client/pkg/data/duckdb"
	"github.com/Ali-khavanin/tse-client/pkg/store"
)

type lookupCmd struct {
	cfg    Config
	logger *zap.Logger

	duckDB string
}

func (*lookupCmd) Name() string     { return "lookup" }
func (*lookupCmd) Synopsis() string { return "prints a stored instrument by ins code or symbol" }
func (*lookupCmd) Usage() string {
	return `tsec lookup [-duckdb dsn] <ins_code|symbol>

  Loads the instruments stored by "tsec ingest" and prints the one matching
  the ins code, symbol or latin symbol.

`
}

func (c *lookupCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.duckDB, "duckdb", c.cfg.DuckDB, "DuckDB database file")
}

func (c *lookupCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 || c.duckDB == "" {
		f.Usage()
		return subcommands.ExitUsageError
	}

	catalog, err := c.load(ctx)
	if err != nil {
		c.logger.Error("unable to load instruments", zap.Error(err))
		return subcommands.ExitFailure
	}

	if err := lookup(os.Stdout, catalog, f.Arg(0)); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *lookupCmd) load(ctx context.Context) (*store.InstrumentStore, error) {
	r := duckdb.NewReader(c.duckDB)
	if err := r.Connect(); err != nil {
		return nil, err
	}
	defer r.Close()

	catalog := store.NewInstrumentStore()
	err := r.LoadInstruments(ctx, func(inst common.Instrument) error {
		return catalog.Store(ctx, inst)
	})
	if err != nil {
		return nil, err
	}
	c.logger.Debug("instruments loaded", zap.Int("count", catalog.Len()))
	return catalog, nil
}

func lookup(w io.Writer, catalog *store.InstrumentStore, key string) error {
	var inst common.Instrument
	var err error
	if insCode, convErr := strconv.ParseInt(key, 10, 64); convErr == nil {
		inst, err = catalog.Get(insCode)
	} else {
		inst, err = catalog.FindSymbol(key)
	}
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(inst)
}
