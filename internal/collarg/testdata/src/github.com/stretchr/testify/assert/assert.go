package assert

type TestingT interface {
	Errorf(format string, args ...any)
}

func Len(t TestingT, object any, length int, msgAndArgs ...any) bool { return true }

func IsIncreasing(t TestingT, object any, msgAndArgs ...any) bool { return true }

func Contains(t TestingT, s, contains any, msgAndArgs ...any) bool { return true }

func NotContains(t TestingT, s, contains any, msgAndArgs ...any) bool { return true }

func ElementsMatch(t TestingT, listA, listB any, msgAndArgs ...any) bool { return true }

func Subset(t TestingT, list, subset any, msgAndArgs ...any) bool { return true }

func NotSubset(t TestingT, list, subset any, msgAndArgs ...any) bool { return true }

func InDeltaSlice(t TestingT, expected, actual any, delta float64, msgAndArgs ...any) bool {
	return true
}

func Equal(t TestingT, expected, actual any, msgAndArgs ...any) bool { return true }

type Assertions struct {
	t TestingT
}

func New(t TestingT) *Assertions { return &Assertions{t: t} }

func (a *Assertions) Len(object any, length int, msgAndArgs ...any) bool { return true }

func (a *Assertions) Contains(s, contains any, msgAndArgs ...any) bool { return true }
