package assert

type TestingT interface {
	Errorf(format string, args ...any)
}

func Same(t TestingT, expected, actual any, msgAndArgs ...any) bool { return true }

func NotSame(t TestingT, expected, actual any, msgAndArgs ...any) bool { return true }

func Samef(t TestingT, expected, actual any, msg string, args ...any) bool { return true }

func NotSamef(t TestingT, expected, actual any, msg string, args ...any) bool { return true }

func Equal(t TestingT, expected, actual any, msgAndArgs ...any) bool { return true }

func NotEqual(t TestingT, expected, actual any, msgAndArgs ...any) bool { return true }

func Equalf(t TestingT, expected, actual any, msg string, args ...any) bool { return true }

func NotEqualf(t TestingT, expected, actual any, msg string, args ...any) bool { return true }

type Assertions struct {
	t TestingT
}

func New(t TestingT) *Assertions { return &Assertions{t: t} }

func (a *Assertions) Same(expected, actual any, msgAndArgs ...any) bool { return true }

func (a *Assertions) Equal(expected, actual any, msgAndArgs ...any) bool { return true }
