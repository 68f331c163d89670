package psql

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/Ali-khavanin/tse-client/pkg/common"
)

const createInstrumentsTable = `CREATE TABLE IF NOT EXISTS tse_instruments (
	ins_code      BIGINT PRIMARY KEY,
	instrument_id TEXT NOT NULL,
	latin_symbol  TEXT NOT NULL,
	latin_name    TEXT NOT NULL,
	company_code  TEXT NOT NULL,
	symbol        TEXT NOT NULL,
	name          TEXT NOT NULL,
	c_isin        TEXT NOT NULL,
	d_even        INTEGER NOT NULL,
	flow          SMALLINT NOT NULL,
	l_soc30       TEXT NOT NULL,
	c_gd_s_val    TEXT NOT NULL,
	c_gr_val_cot  TEXT NOT NULL,
	y_mar_nsc     TEXT NOT NULL,
	c_com_val     TEXT NOT NULL,
	c_sec_val     TEXT NOT NULL,
	c_so_sec_val  TEXT NOT NULL,
	y_val         TEXT NOT NULL
)`

func Connect(ctx context.Context, host, port, user, pass, db string) (*sql.DB, error) {
	connStr := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", host, port, user, pass, db)
	dbConn, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, err
	}

	if err := dbConn.PingContext(ctx); err != nil {
		_ = dbConn.Close()
		return nil, err
	}

	return dbConn, nil
}

func CreateSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, createInstrumentsTable)
	return err
}

func InsertInstrument(ctx context.Context, db *sql.DB, inst common.Instrument) error {
	query := `
	INSERT INTO tse_instruments (
		ins_code, instrument_id, latin_symbol, latin_name, company_code, symbol, name, c_isin,
		d_even, flow, l_soc30, c_gd_s_val, c_gr_val_cot, y_mar_nsc, c_com_val, c_sec_val, c_so_sec_val, y_val
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	ON CONFLICT (ins_code) DO UPDATE SET
		instrument_id = EXCLUDED.instrument_id,
		latin_symbol  = EXCLUDED.latin_symbol,
		latin_name    = EXCLUDED.latin_name,
		company_code  = EXCLUDED.company_code,
		symbol        = EXCLUDED.symbol,
		name          = EXCLUDED.name,
		c_isin        = EXCLUDED.c_isin,
		d_even        = EXCLUDED.d_even,
		flow          = EXCLUDED.flow,
		l_soc30       = EXCLUDED.l_soc30,
		c_gd_s_val    = EXCLUDED.c_gd_s_val,
		c_gr_val_cot  = EXCLUDED.c_gr_val_cot,
		y_mar_nsc     = EXCLUDED.y_mar_nsc,
		c_com_val     = EXCLUDED.c_com_val,
		c_sec_val     = EXCLUDED.c_sec_val,
		c_so_sec_val  = EXCLUDED.c_so_sec_val,
		y_val         = EXCLUDED.y_val;
	`

	_, err := db.ExecContext(
		ctx,
		query,
		inst.InsCode,
		inst.InstrumentID,
		inst.LatinSymbol,
		inst.LatinName,
		inst.CompanyCode,
		inst.Symbol,
		inst.Name,
		inst.CIsin,
		inst.DEven,
		int16(inst.Flow),
		inst.LSoc30,
		inst.CGdSVal,
		inst.CGrValCot,
		inst.YMarNSC,
		inst.CComVal,
		inst.CSecVal,
		inst.CSoSecVal,
		inst.YVal,
	)

	return err
}

func GetInstrument(ctx context.Context, db *sql.DB, insCode int64) (common.Instrument, error) {
	query := `
	SELECT ins_code, instrument_id, latin_symbol, latin_name, company_code, symbol, name, c_isin,
		d_even, flow, l_soc30, c_gd_s_val, c_gr_val_cot, y_mar_nsc, c_com_val, c_sec_val, c_so_sec_val, y_val
	FROM tse_instruments WHERE ins_code = $1`

	var inst common.Instrument
	var flow int16
	err := db.QueryRowContext(ctx, query, insCode).Scan(
		&inst.InsCode, &inst.InstrumentID, &inst.LatinSymbol, &inst.LatinName,
		&inst.CompanyCode, &inst.Symbol, &inst.Name, &inst.CIsin,
		&inst.DEven, &flow, &inst.LSoc30, &inst.CGdSVal,
		&inst.CGrValCot, &inst.YMarNSC, &inst.CComVal, &inst.CSecVal,
		&inst.CSoSecVal, &inst.YVal,
	)
	if err != nil {
		return common.Instrument{}, fmt.Errorf("error loading instrument %d: %w", insCode, err)
	}
	inst.Flow = uint8(flow) // #nosec G115 -- column only ever holds a uint8
	return inst, nil
}

// Store adapts a connection to an ingest sink.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Store(ctx context.Context, inst common.Instrument) error {
	if err := InsertInstrument(ctx, s.db, inst); err != nil {
		return fmt.Errorf("error storing instrument %d: %w", inst.InsCode, err)
	}
	return nil
}
