package assert

import "github.com/oomph-ac/strafebot/oerror"

// IsTrue panics with an oerror.Error if ok is false.
func IsTrue(ok bool, message string, args ...any) {
	if !ok {
		panic(oerror.New(message, args...))
	}
}

// NoError panics with an oerror.Error wrapping err, if err is not nil. The panic value still matches err
// through errors.Is.
func NoError(err error, context string) {
	if err != nil {
		panic(oerror.Wrap(err, "%s", context))
	}
}
