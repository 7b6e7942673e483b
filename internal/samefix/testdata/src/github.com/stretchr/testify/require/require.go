package require

type TestingT interface {
	Errorf(format string, args ...any)
	FailNow()
}

func Same(t TestingT, expected, actual any, msgAndArgs ...any) {}

func NotSame(t TestingT, expected, actual any, msgAndArgs ...any) {}

func NotSamef(t TestingT, expected, actual any, msg string, args ...any) {}

func Equal(t TestingT, expected, actual any, msgAndArgs ...any) {}

func NotEqual(t TestingT, expected, actual any, msgAndArgs ...any) {}

func NotEqualf(t TestingT, expected, actual any, msg string, args ...any) {}
