package decode

import (
	"time"

	"github.com/brightwell/sas7bdat/charset"
	"github.com/brightwell/sas7bdat/endian"
	"github.com/brightwell/sas7bdat/format"
)

// FieldDecoder converts a column's raw row bytes (already sliced to the
// column's offset/length) into a typed Cell.
type FieldDecoder interface {
	Decode(raw []byte) Cell
}

// NewFieldDecoder returns the decoder appropriate to a column's inferred
// logical type, resolved once at open and bound into ColumnInfo (spec.md
// §4.4, §4.7.4).
func NewFieldDecoder(logical format.ColumnType, rawFormat string, eng endian.EndianEngine, codec *charset.Decoder) FieldDecoder {
	switch logical {
	case format.TypeString:
		return textDecoder{codec: codec}
	case format.TypeDateTime:
		return dateTimeDecoder{eng: eng}
	case format.TypeTime:
		return durationDecoder{eng: eng}
	case format.TypeDate:
		return dateDecoder{eng: eng, fromDateTime: IsDateFromDateTimeFormat(rawFormat)}
	default:
		return numberDecoder{eng: eng}
	}
}

type textDecoder struct{ codec *charset.Decoder }

func (d textDecoder) Decode(raw []byte) Cell {
	return Cell{Kind: KindText, Text: DecodeText(raw, d.codec)}
}

type numberDecoder struct{ eng endian.EndianEngine }

func (d numberDecoder) Decode(raw []byte) Cell {
	v := DecodeNumber(raw, d.eng)
	if IsMissingNumber(v) {
		return Missing
	}

	return Cell{Kind: KindNumber, Number: v}
}

type durationDecoder struct{ eng endian.EndianEngine }

func (d durationDecoder) Decode(raw []byte) Cell {
	dur, ok := DecodeDuration(raw, d.eng)
	if !ok {
		return Missing
	}

	return Cell{Kind: KindTime, Duration: dur}
}

type dateTimeDecoder struct{ eng endian.EndianEngine }

func (d dateTimeDecoder) Decode(raw []byte) Cell {
	instant, ok := DecodeDateTime(raw, d.eng)
	if !ok {
		return Missing
	}

	return Cell{Kind: KindDateTime, Instant: instant}
}

type dateDecoder struct {
	eng          endian.EndianEngine
	fromDateTime bool
}

func (d dateDecoder) Decode(raw []byte) Cell {
	var instant time.Time
	var ok bool

	if d.fromDateTime {
		instant, ok = DecodeDateFromDateTime(raw, d.eng)
	} else {
		instant, ok = DecodeDateFromDays(raw, d.eng)
	}

	if !ok {
		return Missing
	}

	return Cell{Kind: KindDate, Instant: instant}
}
