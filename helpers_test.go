package x12doc

import (
	"errors"
	"os"
	"strings"
	"testing"
)

// sampleHeader is a well-formed interchange header with `*` as the
// element separator, `>` as the sub-element separator and `~` as the
// segment terminator.
const sampleHeader = "ISA*00*          *00*          *ZZ*SENDERID       " +
	"*ZZ*RECEIVERID     *240101*1253*U*00401*000000001*0*P*>~"

const sampleGroupHeader = "GS*PO*SENDERID*RECEIVERID*20240101*1253*1*X*004010~"

// failOnErr is a helper function that takes the result of a function that
// only has 1 return value (error), and fails the test if the error is not
// nil. It's intended to reduce boilerplate code in tests.
func failOnErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Errorf("%v", err)
	}
}

func assertEqual[V comparable](t *testing.T, val V, expected V) {
	t.Helper()
	if val != expected {
		t.Errorf("expected:\n%#v\n\ngot:\n%#v", expected, val)
	}
}

func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func assertErrorIs(t *testing.T, err error, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Errorf("expected error to match %v, got: %v", target, err)
	}
}

// x850Document test fixture data is a small 850 purchase order,
// kept one segment per line for readability - the parser strips the
// newlines itself.
func x850Document(t *testing.T) string {
	t.Helper()
	file, err := os.ReadFile("testdata/850.txt")
	assertNoError(t, err)
	return string(file)
}

// buildDocument joins the given segments (each already carrying its
// trailing terminator) after the sample interchange header.
func buildDocument(segments ...string) string {
	return sampleHeader + strings.Join(segments, "")
}
