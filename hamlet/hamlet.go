// Package hamlet provides "to be, or not to be" style expectation helpers
// for tests: must_be asserts a condition holds, wont_be asserts it does not.
package hamlet

import (
	"reflect"
	"testing"
)

type Hamlet struct {
	t      testing.TB
	expect bool
	label  string
}

func Specifications(t testing.TB) (*Hamlet, *Hamlet) {
	return &Hamlet{t: t, expect: true, label: "must be"}, &Hamlet{t: t, expect: false, label: "wont be"}
}

func isNil(value interface{}) bool {
	if value == nil {
		return true
	}
	it := reflect.ValueOf(value)
	switch it.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return it.IsNil()
	}
	return false
}

func (it *Hamlet) check(outcome bool, format string, details ...interface{}) {
	it.t.Helper()
	if outcome != it.expect {
		it.t.Fatalf(it.label+" "+format, details...)
	}
}

func (it *Hamlet) Nil(value interface{}) {
	it.t.Helper()
	it.check(isNil(value), "nil, but was: %#v", value)
}

func (it *Hamlet) True(value bool) {
	it.t.Helper()
	it.check(value, "true")
}

func (it *Hamlet) Equal(expected, actual interface{}) {
	it.t.Helper()
	it.check(reflect.DeepEqual(expected, actual), "equal %#v, actual: %#v", expected, actual)
}

func (it *Hamlet) Text(expected string, actual []byte) {
	it.t.Helper()
	it.check(expected == string(actual), "text %q, actual: %q", expected, string(actual))
}

func (it *Hamlet) Panic(todo func()) {
	it.t.Helper()
	it.check(panics(todo), "panic")
}

func panics(todo func()) (result bool) {
	defer func() {
		if recover() != nil {
			result = true
		}
	}()
	todo()
	return false
}
