package sql_test

import (
	"testing"

	"github.com/sievedb/sieve/sql"
)

func TestFormat(t *testing.T) {
	cases := []struct {
		val sql.Value
		s   string
	}{
		{nil, "NULL"},
		{sql.BoolValue(true), "true"},
		{sql.BoolValue(false), "false"},
		{sql.Int64Value(123), "123"},
		{sql.Int64Value(-456), "-456"},
		{sql.Float64Value(1.5), "1.5"},
		{sql.StringValue("abc"), "'abc'"},
		{sql.BytesValue([]byte{0x12, 0xef}), "'\\x12ef'"},
	}

	for _, c := range cases {
		if s := sql.Format(c.val); s != c.s {
			t.Errorf("Format(%v) got %s want %s", c.val, s, c.s)
		}
	}
}

func TestCompare(t *testing.T) {
	cases := []struct {
		v1, v2 sql.Value
		cmp    int
	}{
		{nil, nil, 0},
		{nil, sql.BoolValue(false), -1},
		{sql.Int64Value(1), nil, 1},
		{sql.BoolValue(true), sql.BoolValue(false), 1},
		{sql.BoolValue(false), sql.BoolValue(false), 0},
		{sql.Int64Value(1), sql.Int64Value(2), -1},
		{sql.Int64Value(2), sql.Float64Value(1.5), 1},
		{sql.Float64Value(1.5), sql.Float64Value(1.5), 0},
		{sql.StringValue("abc"), sql.StringValue("abd"), -1},
		{sql.Int64Value(123), sql.StringValue("abc"), -1},
		{sql.BytesValue([]byte{1}), sql.StringValue("abc"), 1},
		{sql.BytesValue([]byte{1}), sql.BytesValue([]byte{1}), 0},
	}

	for _, c := range cases {
		if cmp := sql.Compare(c.v1, c.v2); cmp != c.cmp {
			t.Errorf("Compare(%s, %s) got %d want %d", sql.Format(c.v1), sql.Format(c.v2),
				cmp, c.cmp)
		}
	}
}

func TestValueCompare(t *testing.T) {
	_, err := sql.Int64Value(1).Compare(sql.StringValue("abc"))
	if err == nil {
		t.Error("Int64Value.Compare(StringValue) did not fail")
	}
	_, err = sql.BoolValue(true).Compare(sql.Int64Value(1))
	if err == nil {
		t.Error("BoolValue.Compare(Int64Value) did not fail")
	}
}
