package duckdb

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/Ali-khavanin/tse-client/pkg/common"
)

const instrumentColumns = `ins_code, instrument_id, latin_symbol, latin_name, company_code, symbol, name, c_isin,
	d_even, flow, l_soc30, c_gd_s_val, c_gr_val_cot, y_mar_nsc, c_com_val, c_sec_val, c_so_sec_val, y_val`

type Reader struct {
	dataSourceName string
	db             *sql.DB
}

func NewReader(dataSourceName string) *Reader {
	return &Reader{
		dataSourceName: dataSourceName,
	}
}

func (r *Reader) Connect() error {
	db, err := sql.Open("duckdb", r.dataSourceName)
	if err != nil {
		return fmt.Errorf("sql.Open: %w", err)
	}
	r.db = db
	return nil
}

func (r *Reader) Close() {
	_ = r.db.Close()
}

func (r *Reader) LoadInstruments(ctx context.Context, handler func(inst common.Instrument) error) error {
	query := `SELECT ` + instrumentColumns + ` FROM instruments ORDER BY ins_code`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("error preparing query: %w", err)
	}
	defer func(rows *sql.Rows) {
		_ = rows.Close()
	}(rows)

	for rows.Next() {
		var inst common.Instrument
		err := rows.Scan(
			&inst.InsCode, &inst.InstrumentID, &inst.LatinSymbol, &inst.LatinName,
			&inst.CompanyCode, &inst.Symbol, &inst.Name, &inst.CIsin,
			&inst.DEven, &inst.Flow, &inst.LSoc30, &inst.CGdSVal,
			&inst.CGrValCot, &inst.YMarNSC, &inst.CComVal, &inst.CSecVal,
			&inst.CSoSecVal, &inst.YVal,
		)
		if err != nil {
			return fmt.Errorf("error scanning row: %w", err)
		}
		if err := handler(inst); err != nil {
			return fmt.Errorf("error processing instrument: %w", err)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("error scanning rows: %w", err)
	}

	return nil
}
