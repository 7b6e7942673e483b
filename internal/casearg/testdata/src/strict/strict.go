package strict

import (
	"testing"

	"github.com/unbound-force/assay/paramtest"
)

func nonConstant(t *testing.T, n int, small int8, s string) {
	paramtest.Run(t, func(t *testing.T, a int16, at string) {},
		paramtest.Case(n, s), // want `n does not bind to a of type int16`
		paramtest.Case(small, s),
		paramtest.Case(5, "x"),
	)
}
