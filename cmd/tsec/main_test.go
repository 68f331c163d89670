package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Ali-khavanin/tse-client/pkg/common"
	"github.com/Ali-khavanin/tse-client/pkg/store"
)

const sampleLine = "12345,INS1,LAT,LATNAME,CC1,SYM,NAME,IR000000001,20230101,1,L30,GDS,GRV,YMAR,CCOM,CSEC,CSOSEC,YVAL"

func TestDecodeCmd_Run(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&decodeCmd{}).run(&buf, []string{sampleLine, sampleLine}))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var inst common.Instrument
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &inst))
	assert.Equal(t, int64(12345), inst.InsCode)
	assert.Equal(t, "YVAL", inst.YVal)
}

func TestDecodeCmd_RunMalformed(t *testing.T) {
	var buf bytes.Buffer
	err := (&decodeCmd{}).run(&buf, []string{sampleLine, "a,b,c"})
	assert.ErrorIs(t, err, common.ErrMalformedRecord)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestDecodeCmd_RunLegacy(t *testing.T) {
	var buf bytes.Buffer
	legacy := strings.TrimSuffix(sampleLine, ",YVAL")
	require.NoError(t, (&decodeCmd{legacy: true}).run(&buf, []string{legacy}))
	assert.Contains(t, buf.String(), `"y_val":""`)
}

func TestLookup(t *testing.T) {
	catalog := store.NewInstrumentStore(common.Instrument{InsCode: 12345, Symbol: "SYM", LatinSymbol: "LAT"})

	for _, key := range []string{"12345", "sym", "LAT"} {
		var buf bytes.Buffer
		require.NoError(t, lookup(&buf, catalog, key))
		assert.Contains(t, buf.String(), `"ins_code": 12345`)
	}

	assert.ErrorIs(t, lookup(&bytes.Buffer{}, catalog, "999"), store.ErrInstrumentNotPresent)
}

func TestIngestCmd_FileToDuckDB(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	feed := writeFeed(t, dir, sampleLine+";a,b,c\n")
	dsn := filepath.Join(dir, "tsec.duckdb")

	cmd := &ingestCmd{logger: zap.NewNop(), source: "file", skip: true, duckDB: dsn}
	require.NoError(t, cmd.run(ctx, feed))

	catalog, err := (&lookupCmd{logger: zap.NewNop(), duckDB: dsn}).load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, catalog.Len())
	assert.Equal(t, "SYM", catalog.MustGet(12345).Symbol)
}

func TestIngestCmd_FailFast(t *testing.T) {
	feed := writeFeed(t, t.TempDir(), "a,b,c\n")
	cmd := &ingestCmd{logger: zap.NewNop(), source: "file"}
	assert.ErrorIs(t, cmd.run(context.Background(), feed), common.ErrMalformedRecord)
}

func TestIngestCmd_UnknownSource(t *testing.T) {
	cmd := &ingestCmd{logger: zap.NewNop(), source: "ftp"}
	assert.Error(t, cmd.run(context.Background(), "x"))
}
