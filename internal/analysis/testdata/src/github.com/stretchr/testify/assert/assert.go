package assert

type TestingT interface {
	Errorf(format string, args ...any)
}

func Same(t TestingT, expected, actual any, msgAndArgs ...any) bool { return true }

func Equal(t TestingT, expected, actual any, msgAndArgs ...any) bool { return true }

func Len(t TestingT, object any, length int, msgAndArgs ...any) bool { return true }
