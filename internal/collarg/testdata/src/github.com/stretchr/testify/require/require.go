package require

type TestingT interface {
	Errorf(format string, args ...any)
	FailNow()
}

func Lenf(t TestingT, object any, length int, msg string, args ...any) {}

func Containsf(t TestingT, s, contains any, msg string, args ...any) {}

func Subset(t TestingT, list, subset any, msgAndArgs ...any) {}
