package x12doc

import (
	"errors"
	"testing"
)

func TestValidDocument(t *testing.T) {
	doc, err := Parse(x850Document(t))
	assertNoError(t, err)

	report := doc.Validate()
	if !report.IsDocumentValid() {
		for _, diagnostic := range report.Errors {
			t.Errorf("[%s] %s", diagnostic.Context, diagnostic.Message)
		}
	}
	assertEqual(t, len(report.Errors), 0)
}

func TestOverlengthControlNumber(t *testing.T) {
	// ST02/SE02 allow at most 9 characters
	text := buildDocument(
		sampleGroupHeader,
		"ST*850*0123456789~",
		"ZZZ*A~",
		"SE*3*0123456789~",
		"GE*1*1~",
		"IEA*1*000000001~",
	)
	doc, err := Parse(text)
	assertNoError(t, err)

	// validation does not block assembly
	assertEqual(t, len(doc.Interchange.Groups), 1)
	assertEqual(t, len(doc.Interchange.Groups[0].TransactionSets), 1)

	report := doc.Validate()
	assertEqual(t, report.IsDocumentValid(), false)
	assertEqual(t, len(report.Errors), 2)
	for _, diagnostic := range report.Errors {
		assertErrorIs(t, diagnostic.Err, ErrElementBadLength)
		assertErrorIs(t, diagnostic.Err, ValidationError)
	}
}

func TestRequiredElementMissing(t *testing.T) {
	text := buildDocument(
		"GS*PO~",
		"GE*0*~",
		"IEA*1*000000001~",
	)
	doc, err := Parse(text)
	assertNoError(t, err)

	report := doc.Validate()
	assertEqual(t, report.IsDocumentValid(), false)

	var missing int
	for _, diagnostic := range report.Errors {
		if diagnosticIs(diagnostic, ErrRequiredElementMissing) {
			missing++
		}
	}
	// GS02 through GS08 are empty, as is GE02
	if missing < 7 {
		t.Errorf("expected at least 7 missing-element diagnostics, got %d", missing)
	}
}

func TestSegmentCountMismatch(t *testing.T) {
	text := buildDocument(
		sampleGroupHeader,
		"ST*850*0001~",
		"ZZZ*A~",
		"SE*3*0001~",
		"GE*2*1~",
		"IEA*1*000000001~",
	)
	doc, err := Parse(text)
	assertNoError(t, err)

	report := doc.Validate()
	assertEqual(t, report.IsDocumentValid(), false)
	assertEqual(t, len(report.Errors), 1)
	assertErrorIs(t, report.Errors[0].Err, ErrSegmentCountMismatch)
	assertEqual(t, report.Errors[0].Context, geSegmentId)
}

func TestTransactionSegmentCountMismatch(t *testing.T) {
	text := buildDocument(
		sampleGroupHeader,
		"ST*850*0001~",
		"ZZZ*A~",
		"SE*9*0001~",
		"GE*1*1~",
		"IEA*1*000000001~",
	)
	doc, err := Parse(text)
	assertNoError(t, err)

	report := doc.Validate()
	assertEqual(t, len(report.Errors), 1)
	assertErrorIs(t, report.Errors[0].Err, ErrSegmentCountMismatch)
	assertEqual(t, report.Errors[0].Context, seSegmentId)
}

func TestNonNumericTrailerCount(t *testing.T) {
	text := buildDocument(
		sampleGroupHeader,
		"ST*850*0001~",
		"SE*2*0001~",
		"GE*X*1~",
		"IEA*1*000000001~",
	)
	doc, err := Parse(text)
	assertNoError(t, err)

	report := doc.Validate()
	assertEqual(t, report.IsDocumentValid(), false)
	var found bool
	for _, diagnostic := range report.Errors {
		if diagnosticIs(diagnostic, ErrSegmentCountMismatch) {
			found = true
		}
	}
	assertEqual(t, found, true)
}

func TestControlNumberMismatch(t *testing.T) {
	text := buildDocument(
		sampleGroupHeader,
		"ST*850*0001~",
		"SE*2*0001~",
		"GE*1*1~",
		"IEA*1*000000002~",
	)
	doc, err := Parse(text)
	assertNoError(t, err)

	report := doc.Validate()
	assertEqual(t, report.IsDocumentValid(), false)
	assertEqual(t, len(report.Errors), 1)
	assertErrorIs(t, report.Errors[0].Err, ErrControlNumberMismatch)
	assertEqual(t, report.Errors[0].Context, "ISA/IEA")
}

func TestGenericSegmentsNeverFlagged(t *testing.T) {
	text := buildDocument(
		sampleGroupHeader,
		"ST*850*0001~",
		"AAA~",
		"BBB*~",
		"CCC*SHORT*AVERYLONGVALUEINDEED*X~",
		"SE*5*0001~",
		"GE*1*1~",
		"IEA*1*000000001~",
	)
	doc, err := Parse(text)
	assertNoError(t, err)

	report := doc.Validate()
	if !report.IsDocumentValid() {
		for _, diagnostic := range report.Errors {
			t.Errorf("[%s] %s", diagnostic.Context, diagnostic.Message)
		}
	}
}

func diagnosticIs(d Diagnostic, target error) bool {
	return errors.Is(d.Err, target)
}
