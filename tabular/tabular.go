// Package tabular renders query results as aligned text tables, for
// programs embedding the engine that want human readable output.
package tabular

import (
	"context"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/sievedb/sieve/executor"
	"github.com/sievedb/sieve/sql"
)

// Write renders every remaining row of rows to w and returns the
// number of rows rendered.
func Write(ctx context.Context, w io.Writer, rows *executor.Rows) (int, error) {
	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)

	cols := rows.Columns()
	row := make([]string, len(cols))
	for cdx, col := range cols {
		row[cdx] = col.String()
	}
	tw.SetHeader(row)

	dest := make([]sql.Value, len(cols))
	for {
		err := rows.Next(ctx, dest)
		if err == io.EOF {
			break
		} else if err != nil {
			return 0, err
		}

		for cdx, v := range dest {
			if s, ok := v.(sql.StringValue); ok {
				row[cdx] = string(s)
				continue
			}
			row[cdx] = sql.Format(v)
		}
		tw.Append(row)
	}
	tw.Render()
	fmt.Fprintf(w, "(%d rows)\n", tw.NumLines())
	return tw.NumLines(), nil
}
