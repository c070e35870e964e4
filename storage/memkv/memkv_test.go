package memkv_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sievedb/sieve/sql"
	"github.com/sievedb/sieve/storage"
	"github.com/sievedb/sieve/storage/memkv"
	"github.com/sievedb/sieve/testutil"
)

func TestStore(t *testing.T) {
	ctx := context.Background()
	st := memkv.NewStore()

	tbl := sql.ID("tbl")
	cols := []sql.Identifier{sql.ID("id"), sql.ID("name")}
	err := st.CreateTable(tbl, cols)
	if err != nil {
		t.Fatalf("CreateTable(%s) failed with %s", tbl, err)
	}
	if err = st.CreateTable(tbl, cols); err == nil {
		t.Fatalf("CreateTable(%s) twice did not fail", tbl)
	}

	want := [][]sql.Value{
		{sql.Int64Value(1), sql.StringValue("abc")},
		{sql.Int64Value(2), sql.StringValue("def")},
		{sql.Int64Value(3), nil},
	}
	for _, row := range want {
		if err = st.Insert(tbl, row); err != nil {
			t.Fatalf("Insert(%s, %v) failed with %s", tbl, row, err)
		}
	}
	err = st.Insert(tbl, []sql.Value{sql.Int64Value(4)})
	if err == nil {
		t.Fatal("Insert with wrong arity did not fail")
	}

	ret, err := st.Columns(ctx, tbl)
	if err != nil {
		t.Fatalf("Columns(%s) failed with %s", tbl, err)
	}
	if !testutil.DeepEqual(ret, cols) {
		t.Errorf("Columns(%s) got %v want %v", tbl, ret, cols)
	}

	r, err := st.Rows(ctx, tbl)
	if err != nil {
		t.Fatalf("Rows(%s) failed with %s", tbl, err)
	}
	var got [][]sql.Value
	for {
		_, row, err := r.Next(ctx)
		if err == io.EOF {
			break
		} else if err != nil {
			t.Fatalf("Next() failed with %s", err)
		}
		got = append(got, row)
	}
	if err = r.Close(); err != nil {
		t.Errorf("Close() failed with %s", err)
	}
	if !testutil.DeepEqual(got, want) {
		t.Errorf("Rows(%s) got %v want %v", tbl, got, want)
	}

	_, err = st.Columns(ctx, sql.ID("missing"))
	var tnf *storage.TableNotFoundError
	if !errors.As(err, &tnf) {
		t.Errorf("Columns(missing) got %v want TableNotFoundError", err)
	}
	_, err = st.Rows(ctx, sql.ID("missing"))
	if !errors.As(err, &tnf) {
		t.Errorf("Rows(missing) got %v want TableNotFoundError", err)
	}
}
