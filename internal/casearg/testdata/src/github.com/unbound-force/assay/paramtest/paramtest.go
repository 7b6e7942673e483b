package paramtest

import "testing"

type CaseData struct{}

func Case(args ...any) CaseData { return CaseData{} }

func (c CaseData) Returns(v any) CaseData { return c }

func (c CaseData) Named(name string) CaseData { return c }

func Run(t *testing.T, fn any, cases ...CaseData) {}

type ValueSource struct{}

func Values(vals ...any) ValueSource { return ValueSource{} }

func RunValues(t *testing.T, fn any, sources ...ValueSource) {}
