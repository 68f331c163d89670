package common

import (
	"strconv"
	"strings"
)

const instrumentFieldSeparator = ","

type DecoderOption func(*Decoder)

// WithLegacyFieldCount reproduces the field count check of the original feed
// client: a record must have 17 fields and YVal is left empty.
func WithLegacyFieldCount() DecoderOption {
	return func(d *Decoder) {
		d.fieldCount = LegacyInstrumentFieldCount
	}
}

// Decoder turns raw feed lines into Instrument values. It holds no mutable
// state and is safe for concurrent use.
type Decoder struct {
	fieldCount int
}

func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{
		fieldCount: InstrumentFieldCount,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Decoder) FieldCount() int {
	return d.fieldCount
}

func (d *Decoder) Decode(line string) (Instrument, error) {
	row := strings.Split(line, instrumentFieldSeparator)
	if len(row) != d.fieldCount {
		return Instrument{}, &MalformedRecordError{
			Kind: KindShapeMismatch,
			Got:  len(row),
			Want: d.fieldCount,
			Raw:  line,
		}
	}

	insCode, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return Instrument{}, invalidField("InsCode", line, err)
	}
	dEven, err := strconv.ParseInt(row[8], 10, 32)
	if err != nil {
		return Instrument{}, invalidField("DEven", line, err)
	}
	flow, err := strconv.ParseUint(row[9], 10, 8)
	if err != nil {
		return Instrument{}, invalidField("Flow", line, err)
	}

	inst := Instrument{
		InsCode:      insCode,
		InstrumentID: row[1],
		LatinSymbol:  row[2],
		LatinName:    row[3],
		CompanyCode:  row[4],
		Symbol:       row[5],
		Name:         row[6],
		CIsin:        row[7],
		DEven:        int32(dEven), // #nosec G115 -- bounded by ParseInt bitSize
		Flow:         uint8(flow),  // #nosec G115 -- bounded by ParseUint bitSize
		LSoc30:       row[10],
		CGdSVal:      row[11],
		CGrValCot:    row[12],
		YMarNSC:      row[13],
		CComVal:      row[14],
		CSecVal:      row[15],
		CSoSecVal:    row[16],
	}
	if len(row) > 17 {
		inst.YVal = row[17]
	}
	return inst, nil
}

var defaultDecoder = NewDecoder()

// ParseInstrument decodes a single 18 field feed line.
func ParseInstrument(line string) (Instrument, error) {
	return defaultDecoder.Decode(line)
}

func invalidField(field, line string, err error) error {
	return &MalformedRecordError{
		Kind:  KindInvalidFieldValue,
		Field: field,
		Raw:   line,
		Err:   err,
	}
}
