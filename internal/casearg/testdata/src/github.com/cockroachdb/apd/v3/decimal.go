package apd

type Decimal struct {
	Negative bool
	Exponent int32
}
