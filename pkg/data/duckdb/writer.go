package duckdb

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Ali-khavanin/tse-client/pkg/common"
)

const createInstrumentsTable = `CREATE TABLE IF NOT EXISTS instruments (
	ins_code      BIGINT PRIMARY KEY,
	instrument_id VARCHAR NOT NULL,
	latin_symbol  VARCHAR NOT NULL,
	latin_name    VARCHAR NOT NULL,
	company_code  VARCHAR NOT NULL,
	symbol        VARCHAR NOT NULL,
	name          VARCHAR NOT NULL,
	c_isin        VARCHAR NOT NULL,
	d_even        INTEGER NOT NULL,
	flow          UTINYINT NOT NULL,
	l_soc30       VARCHAR NOT NULL,
	c_gd_s_val    VARCHAR NOT NULL,
	c_gr_val_cot  VARCHAR NOT NULL,
	y_mar_nsc     VARCHAR NOT NULL,
	c_com_val     VARCHAR NOT NULL,
	c_sec_val     VARCHAR NOT NULL,
	c_so_sec_val  VARCHAR NOT NULL,
	y_val         VARCHAR NOT NULL
)`

// Writer persists instruments into the instruments table. The table is
// created on Connect when missing.
type Writer struct {
	dataSourceName string
	db             *sql.DB
}

func NewWriter(dataSourceName string) *Writer {
	return &Writer{
		dataSourceName: dataSourceName,
	}
}

func (w *Writer) Connect(ctx context.Context) error {
	db, err := sql.Open("duckdb", w.dataSourceName)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	if _, err := db.ExecContext(ctx, createInstrumentsTable); err != nil {
		_ = db.Close()
		return fmt.Errorf("error creating instruments table: %w", err)
	}
	w.db = db
	return nil
}

func (w *Writer) Close() {
	_ = w.db.Close()
}

func (w *Writer) Store(ctx context.Context, inst common.Instrument) error {
	query := `INSERT OR REPLACE INTO instruments (` + instrumentColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := w.db.ExecContext(ctx, query,
		inst.InsCode, inst.InstrumentID, inst.LatinSymbol, inst.LatinName,
		inst.CompanyCode, inst.Symbol, inst.Name, inst.CIsin,
		inst.DEven, inst.Flow, inst.LSoc30, inst.CGdSVal,
		inst.CGrValCot, inst.YMarNSC, inst.CComVal, inst.CSecVal,
		inst.CSoSecVal, inst.YVal,
	)
	if err != nil {
		return fmt.Errorf("error storing instrument %d: %w", inst.InsCode, err)
	}
	return nil
}
