package testutil

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/lgbarn/schach-go/internal/chess"
)

// Squares parses algebraic square names. It panics on a bad name, so it is
// only meant for literals in tests.
func Squares(names ...string) []chess.Position {
	out := make([]chess.Position, 0, len(names))
	for _, n := range names {
		out = append(out, chess.MustParsePosition(n))
	}
	return out
}

// squareSetOpts compares position slices as sets: order is ignored and
// nil equals empty.
var squareSetOpts = []cmp.Option{
	cmpopts.EquateEmpty(),
	cmpopts.SortSlices(func(a, b chess.Position) bool {
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Col < b.Col
	}),
	cmp.Transformer("square", func(p chess.Position) string { return p.String() }),
}

// AssertSquares compares two sets of squares, ignoring order.
func AssertSquares(t *testing.T, got, want []chess.Position, msgAndArgs ...interface{}) {
	t.Helper()
	if diff := cmp.Diff(want, got, squareSetOpts...); diff != "" {
		reportf(t, msgAndArgs, "squares mismatch (-want +got):\n%s", diff)
	}
}

// ExpectPanic runs fn and returns the value it panicked with. The test
// fails if fn returns normally.
func ExpectPanic(t *testing.T, fn func()) (recovered interface{}) {
	t.Helper()
	defer func() {
		recovered = recover()
		if recovered == nil {
			t.Error("expected panic but function returned normally")
		}
	}()
	fn()
	return nil
}
