package encode

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/sievedb/sieve/sql"
)

const (
	boolValueTag    = 1
	int64ValueTag   = 2
	float64ValueTag = 3
	stringValueTag  = 4
	bytesValueTag   = 5
	// Value tags must be less than 16.
)

func encodeColNumValueTag(buf []byte, colNum int, tag byte) []byte {
	if colNum == 0 {
		buf = append(buf, tag)
	} else if colNum < 15 {
		buf = append(buf, byte(colNum<<4)|tag)
	} else {
		buf = append(buf, 0xF0|tag)
		buf = EncodeVarint(buf, uint64(colNum))
	}
	return buf
}

// EncodeRowValue encodes a row as a varint column count followed by a
// tagged value per non-NULL column.
func EncodeRowValue(row []sql.Value) []byte {
	if len(row) == 0 {
		panic("encode row value called with zero length row")
	}

	buf := EncodeVarint(nil, uint64(len(row)))
	for num := range row {
		val := row[num]
		if val == nil {
			continue
		}
		switch val := val.(type) {
		case sql.BoolValue:
			buf = encodeColNumValueTag(buf, num, boolValueTag)
			if val {
				buf = append(buf, 1)
			} else {
				buf = append(buf, 0)
			}
		case sql.StringValue:
			b := []byte(val)
			buf = encodeColNumValueTag(buf, num, stringValueTag)
			buf = EncodeVarint(buf, uint64(len(b)))
			buf = append(buf, b...)
		case sql.BytesValue:
			b := []byte(val)
			buf = encodeColNumValueTag(buf, num, bytesValueTag)
			buf = EncodeVarint(buf, uint64(len(b)))
			buf = append(buf, b...)
		case sql.Float64Value:
			buf = encodeColNumValueTag(buf, num, float64ValueTag)
			buf = EncodeUint64(buf, math.Float64bits(float64(val)))
		case sql.Int64Value:
			buf = encodeColNumValueTag(buf, num, int64ValueTag)
			buf = EncodeZigzag64(buf, int64(val))
		default:
			panic(fmt.Sprintf("unexpected type for sql.Value: %T: %v", val, val))
		}
	}
	return buf
}

// DecodeRowValue returns nil if buf is not a valid encoded row.
func DecodeRowValue(buf []byte) []sql.Value {
	var ok bool
	var u uint64

	buf, u, ok = DecodeVarint(buf)
	if !ok {
		return nil
	}
	dest := make([]sql.Value, u)

	for len(buf) > 0 {
		tag := buf[0] & 0x0F
		num := int(buf[0] >> 4)
		buf = buf[1:]
		if num == 15 {
			buf, u, ok = DecodeVarint(buf)
			if !ok {
				return nil
			}
			num = int(u)
		}

		var val sql.Value
		switch tag {
		case boolValueTag:
			if len(buf) < 1 {
				return nil
			}
			if buf[0] == 0 {
				val = sql.BoolValue(false)
			} else {
				val = sql.BoolValue(true)
			}
			buf = buf[1:]
		case stringValueTag:
			buf, u, ok = DecodeVarint(buf)
			if !ok {
				return nil
			}
			if len(buf) < int(u) {
				return nil
			}
			val = sql.StringValue(buf[:u])
			buf = buf[u:]
		case bytesValueTag:
			buf, u, ok = DecodeVarint(buf)
			if !ok {
				return nil
			}
			if len(buf) < int(u) {
				return nil
			}
			val = sql.BytesValue(buf[:u])
			buf = buf[u:]
		case float64ValueTag:
			if len(buf) < 8 {
				return nil
			}
			u = binary.BigEndian.Uint64(buf)
			val = sql.Float64Value(math.Float64frombits(u))
			buf = buf[8:]
		case int64ValueTag:
			var n int64
			buf, n, ok = DecodeZigzag64(buf)
			if !ok {
				return nil
			}
			val = sql.Int64Value(n)
		default:
			return nil
		}

		if num >= len(dest) {
			return nil
		}
		dest[num] = val
	}

	return dest
}

// EncodeColumns encodes an ordered column schema.
func EncodeColumns(cols []sql.Identifier) []byte {
	buf := EncodeVarint(nil, uint64(len(cols)))
	for _, col := range cols {
		b := []byte(col.String())
		buf = EncodeVarint(buf, uint64(len(b)))
		buf = append(buf, b...)
	}
	return buf
}

// DecodeColumns returns nil if buf is not a valid encoded schema.
func DecodeColumns(buf []byte) []sql.Identifier {
	var ok bool
	var u uint64

	buf, u, ok = DecodeVarint(buf)
	if !ok {
		return nil
	}
	cols := make([]sql.Identifier, 0, u)

	for u > 0 {
		u -= 1

		var n uint64
		buf, n, ok = DecodeVarint(buf)
		if !ok {
			return nil
		}
		if len(buf) < int(n) {
			return nil
		}
		cols = append(cols, sql.QuotedID(string(buf[:n])))
		buf = buf[n:]
	}

	if len(buf) != 0 {
		return nil
	}
	return cols
}
