package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"

	"github.com/Ali-khavanin/tse-client/pkg/common"
)

type decodeCmd struct {
	legacy bool
}

func (*decodeCmd) Name() string     { return "decode" }
func (*decodeCmd) Synopsis() string { return "decodes instrument feed lines and prints them as JSON" }
func (*decodeCmd) Usage() string {
	return `tsec decode [-legacy] <line>...

  Decodes every argument as one comma separated instrument record and prints
  one JSON object per line. Stops at the first malformed record.

`
}

func (c *decodeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.legacy, "legacy", false, "accept the legacy 17 field layout")
}

func (c *decodeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		f.Usage()
		return subcommands.ExitUsageError
	}
	if err := c.run(os.Stdout, f.Args()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *decodeCmd) run(w io.Writer, lines []string) error {
	var opts []common.DecoderOption
	if c.legacy {
		opts = append(opts, common.WithLegacyFieldCount())
	}
	decoder := common.NewDecoder(opts...)

	enc := json.NewEncoder(w)
	for _, line := range lines {
		inst, err := decoder.Decode(line)
		if err != nil {
			return err
		}
		if err := enc.Encode(inst); err != nil {
			return fmt.Errorf("error encoding instrument %d: %w", inst.InsCode, err)
		}
	}
	return nil
}
