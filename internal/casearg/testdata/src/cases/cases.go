package cases

import (
	"testing"
	"time"

	"github.com/cockroachdb/apd/v3"
	"github.com/google/uuid"
	"github.com/unbound-force/assay/paramtest"
)

type Color int

const (
	Red Color = iota
	Green
)

func narrowing(t *testing.T) {
	paramtest.Run(t, func(t *testing.T, a int16, b uint8, c int64, d int8, e float64) {},
		paramtest.Case(5, 255, 1<<40, -128, 3),
		paramtest.Case(100000, 999999, 0, 128, 0), // want `100000 does not bind to a of type int16: value out of range` `999999 does not bind to b of type uint8` `128 does not bind to d of type int8`
	)
}

func decimals(t *testing.T) {
	paramtest.Run(t, func(t *testing.T, d apd.Decimal) {},
		paramtest.Case("12.5"),
		paramtest.Case(2.75),
		paramtest.Case(7),
		paramtest.Case("not-a-number"), // want `"not-a-number" does not bind to d of type apd.Decimal: malformed value`
	)
}

func dates(t *testing.T) {
	paramtest.Run(t, func(t *testing.T, at time.Time) {},
		paramtest.Case("2024-01-31"),
		paramtest.Case("2024-01-31T08:00:00Z"),
		paramtest.Case("someday"), // want `"someday" does not bind to at of type time.Time`
		paramtest.Case(20240131),  // want `20240131 does not bind to at of type time.Time`
	)
}

func enums(t *testing.T) {
	paramtest.Run(t, func(t *testing.T, c Color) {},
		paramtest.Case(Red),
		paramtest.Case(1),
		paramtest.Case(42),
		paramtest.Case("red"), // want `"red" does not bind to c of type Color`
	)
	paramtest.Run(t, func(t *testing.T, d time.Duration) {},
		paramtest.Case(time.Second),
		paramtest.Case(5),
	)
}

func pointers(t *testing.T) {
	paramtest.Run(t, func(t *testing.T, p *int16, s []string, v int) {},
		paramtest.Case(nil, nil, 1),
		paramtest.Case(7, nil, 2),
		paramtest.Case(nil, nil, nil),  // want `nil does not bind to v of type int`
		paramtest.Case(100000, nil, 0), // want `100000 does not bind to p of type \*int16`
	)
}

func counts(t *testing.T) {
	paramtest.Run(t, func(t *testing.T, a, b int) int { return a + b },
		paramtest.Case(1, 2).Returns(3),
		paramtest.Case(1),                     // want `Case has 1 arguments, test function takes 2`
		paramtest.Case(1, 2).Returns("three"), // want `"three" does not bind to result of type int`
		paramtest.Case(1, 2).Named("ok").Returns(int8(3)),
	)
	paramtest.Run(t, func(t *testing.T, a int) {},
		paramtest.Case(1).Returns(1), // want `Returns needs a test function with one result, it has 0`
	)
	paramtest.Run(t, func(t *testing.T, sep string, xs ...int16) {},
		paramtest.Case(","),
		paramtest.Case(",", 1, 2, 70000), // want `70000 does not bind to xs of type int16`
		paramtest.Case(),                 // want `Case has 0 arguments, test function needs at least 1`
	)
}

func addOne(t *testing.T, n int) int { return n + 1 }

func namedFunc(t *testing.T) {
	paramtest.Run(t, addOne,
		paramtest.Case(uint8(1)).Returns(2),
		paramtest.Case(1.5).Returns(2), // want `1.5 does not bind to n of type int`
	)
}

func nonConstant(t *testing.T, n int, s string) {
	paramtest.Run(t, func(t *testing.T, a int16, u uuid.UUID) {},
		paramtest.Case(n, "6ba7b810-9dad-11d1-80b4-00c04fd430c8"),
		paramtest.Case(0, "bogus"), // want `"bogus" does not bind to u of type uuid.UUID: malformed value`
		paramtest.Case(0, s),       // want `s does not bind to u of type uuid.UUID: invalid cast`
	)
}

func values(t *testing.T) {
	paramtest.RunValues(t, func(t *testing.T, a int16, c Color) {},
		paramtest.Values(1, 2, 100000), // want `100000 does not bind to a of type int16`
		paramtest.Values(Red, 3),
	)
	paramtest.RunValues(t, func(t *testing.T, a int64) {}, // want `RunValues has 2 value sources, test function takes 1 parameters`
		paramtest.Values(1),
		paramtest.Values(2),
	)
	paramtest.RunValues(t, func(t *testing.T, f float64) {},
		paramtest.Values(int8(1)), // want `int8\(1\) does not bind to f of type float64`
	)
}

func ignored(t *testing.T, cs []paramtest.CaseData, fn func(*testing.T, int)) {
	paramtest.Run(t, fn, cs...)
	paramtest.Run(t, func(n int) {}, paramtest.Case("x"))
	c := paramtest.Case("x")
	paramtest.Run(t, fn, c)
}
