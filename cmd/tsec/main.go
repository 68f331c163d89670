package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/subcommands"
	"go.uber.org/zap"
)

func main() {
	cfg, warnings := LoadConfig()

	logger, err := cfg.NewLogger()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "unable to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func(logger *zap.Logger) {
		_ = logger.Sync()
	}(logger)

	for _, w := range warnings {
		logger.Warn(w)
	}
	logger.Debug("tsec", zap.String("version", Version), zap.String("env", cfg.Env))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	commander := subcommands.NewCommander(flag.CommandLine, "tsec")
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(&decodeCmd{}, "instruments")
	commander.Register(&ingestCmd{cfg: cfg, logger: logger}, "instruments")
	commander.Register(&lookupCmd{cfg: cfg, logger: logger}, "instruments")

	flag.Parse()
	status := commander.Execute(ctx)

	_ = logger.Sync()
	os.Exit(int(status))
}
