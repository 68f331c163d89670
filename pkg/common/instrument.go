package common

import (
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"
)

const (
	InstrumentFieldCount       = 18
	LegacyInstrumentFieldCount = 17

	instrumentDateLayout = "20060102"
)

// Instrument is the reference record of a tradable security as published by
// the instrument feed. Values are immutable once decoded.
type Instrument struct {
	InsCode      int64  `json:"ins_code"`
	InstrumentID string `json:"instrument_id"`
	LatinSymbol  string `json:"latin_symbol"`
	LatinName    string `json:"latin_name"`
	CompanyCode  string `json:"company_code"`
	Symbol       string `json:"symbol"`
	Name         string `json:"name"`
	CIsin        string `json:"c_isin"`
	DEven        int32  `json:"d_even"`
	Flow         uint8  `json:"flow"`
	LSoc30       string `json:"l_soc30"`
	CGdSVal      string `json:"c_gd_s_val"`
	CGrValCot    string `json:"c_gr_val_cot"`
	YMarNSC      string `json:"y_mar_nsc"`
	CComVal      string `json:"c_com_val"`
	CSecVal      string `json:"c_sec_val"`
	CSoSecVal    string `json:"c_so_sec_val"`
	YVal         string `json:"y_val"`
}

// Date interprets DEven as a YYYYMMDD calendar date in UTC.
func (i Instrument) Date() (time.Time, error) {
	d, err := time.ParseInLocation(instrumentDateLayout, strconv.FormatInt(int64(i.DEven), 10), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("d_even %d is not a YYYYMMDD date: %w", i.DEven, err)
	}
	return d, nil
}

func (i Instrument) Fields() []zap.Field {
	return []zap.Field{
		zap.Int64("ins_code", i.InsCode),
		zap.String("instrument_id", i.InstrumentID),
		zap.String("latin_symbol", i.LatinSymbol),
		zap.String("symbol", i.Symbol),
		zap.String("c_isin", i.CIsin),
		zap.Int32("d_even", i.DEven),
		zap.Uint8("flow", i.Flow),
		zap.String("y_val", i.YVal),
	}
}
