package executor

import (
	"github.com/sievedb/sieve/stmt"
)

// limiter windows filter-admitted rows by zero-based ordinal. A
// negative count means unbounded.
type limiter struct {
	offset int64
	count  int64
}

func makeLimiter(lc *stmt.LimitClause) limiter {
	l := limiter{offset: 0, count: -1}
	if lc != nil {
		if lc.Offset != nil {
			l.offset = *lc.Offset
		}
		if lc.Count != nil {
			l.count = *lc.Count
		}
	}
	return l
}

// admit reports whether the row at admitted-ordinal i is inside the
// window.
func (l limiter) admit(i int64) bool {
	if i < l.offset {
		return false
	}
	return l.count < 0 || i < l.offset+l.count
}

// exhausted reports whether ordinal i is past the window's upper bound,
// allowing the pipeline to stop pulling.
func (l limiter) exhausted(i int64) bool {
	return l.count >= 0 && i >= l.offset+l.count
}
