package psql

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ali-khavanin/tse-client/pkg/common"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestPsql_InsertAndGetInstrument(t *testing.T) {
	host := os.Getenv("TSEC_PG_HOST")
	if host == "" {
		t.Skip("TSEC_PG_HOST not set")
	}

	ctx := context.Background()
	db, err := Connect(ctx, host,
		getEnv("TSEC_PG_PORT", "5432"),
		getEnv("TSEC_PG_USER", "tsec"),
		getEnv("TSEC_PG_PASSWORD", "tsec"),
		getEnv("TSEC_PG_DB", "tsec"))
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	require.NoError(t, CreateSchema(ctx, db))

	inst := common.Instrument{InsCode: 987654321, InstrumentID: "IRO1TEST0001", Symbol: "TEST", DEven: 20230101, Flow: 3}
	require.NoError(t, NewStore(db).Store(ctx, inst))

	inst.YVal = "300"
	require.NoError(t, InsertInstrument(ctx, db, inst))

	loaded, err := GetInstrument(ctx, db, inst.InsCode)
	require.NoError(t, err)
	assert.Equal(t, inst, loaded)

	_, err = db.ExecContext(ctx, `DELETE FROM tse_instruments WHERE ins_code = $1`, inst.InsCode)
	require.NoError(t, err)
}
