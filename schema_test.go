package x12doc

import (
	"testing"
)

// begSchema is a stricter layout for the 850 beginning segment, used to
// exercise registered business segment schemas.
func begSchema() *SegmentSchema {
	return &SegmentSchema{
		Tag: "BEG",
		Fields: []FieldSpec{
			{Name: "BEG", Description: "Beginning Segment for Purchase Order", Required: true, MinLength: 3, MaxLength: 3},
			{Name: "BEG01", Description: "Transaction Set Purpose Code", Required: true, MinLength: 2, MaxLength: 2},
			{Name: "BEG02", Description: "Purchase Order Type Code", Required: true, MinLength: 2, MaxLength: 2},
			{Name: "BEG03", Description: "Purchase Order Number", Required: true, MinLength: 1, MaxLength: 22},
			{Name: "BEG04", Description: "Release Number", Required: false, MinLength: 1, MaxLength: 30},
			{Name: "BEG05", Description: "Date", Required: true, MinLength: 8, MaxLength: 8},
		},
	}
}

func TestRegisteredSchemaParsesKnownSegment(t *testing.T) {
	p, err := NewParser(begSchema())
	assertNoError(t, err)

	doc, err := p.Parse(x850Document(t))
	assertNoError(t, err)

	beg := doc.Interchange.Groups[0].TransactionSets[0].Body[0]
	assertEqual(t, beg.Tag(), "BEG")
	assertEqual(t, beg.FieldCount, 6)
	assertEqual(t, beg.Fields[1].Name, "BEG01")
	assertEqual(t, beg.Fields[1].Content, "00")
	assertEqual(t, beg.Fields[1].Required, true)
	assertEqual(t, beg.Fields[3].Content, "4500012345")
}

func TestRegisteredSchemaValidatedStrictly(t *testing.T) {
	p, err := NewParser(begSchema())
	assertNoError(t, err)

	text := buildDocument(
		sampleGroupHeader,
		"ST*850*0001~",
		"BEG*TOOLONG*SA*4500012345**20240101~",
		"SE*3*0001~",
		"GE*1*1~",
		"IEA*1*000000001~",
	)
	doc, err := p.Parse(text)
	assertNoError(t, err)

	report := doc.Validate()
	assertEqual(t, report.IsDocumentValid(), false)
	assertEqual(t, len(report.Errors), 1)
	assertErrorIs(t, report.Errors[0].Err, ErrElementBadLength)
	assertEqual(t, report.Errors[0].Context, "BEG/BEG01")
}

func TestUnregisteredTagStaysGeneric(t *testing.T) {
	p, err := NewParser(begSchema())
	assertNoError(t, err)

	doc, err := p.Parse(x850Document(t))
	assertNoError(t, err)

	po1 := doc.Interchange.Groups[0].TransactionSets[0].Body[1]
	assertEqual(t, po1.Tag(), "PO1")
	assertEqual(t, po1.Fields[1].Required, false)
	assertEqual(t, po1.Fields[1].MinLength, len(po1.Fields[1].Content))
}

func TestRegistryRejectsEnvelopeTags(t *testing.T) {
	registry, err := NewSchemaRegistry()
	assertNoError(t, err)
	for _, tag := range []string{
		isaSegmentId,
		ieaSegmentId,
		gsSegmentId,
		geSegmentId,
		stSegmentId,
		seSegmentId,
	} {
		err = registry.Register(&SegmentSchema{
			Tag:    tag,
			Fields: []FieldSpec{tagField(tag, "")},
		})
		if err == nil {
			t.Errorf("expected an error registering envelope tag %q", tag)
		}
	}
}

func TestSchemaValidate(t *testing.T) {
	badFirstField := &SegmentSchema{
		Tag:    "ZZZ",
		Fields: []FieldSpec{{Name: "YYY"}},
	}
	if badFirstField.Validate() == nil {
		t.Error("expected an error for a first field not matching the tag")
	}

	badBounds := &SegmentSchema{
		Tag: "ZZZ",
		Fields: []FieldSpec{
			tagField("ZZZ", ""),
			{Name: "ZZZ01", MinLength: 5, MaxLength: 2},
		},
	}
	if badBounds.Validate() == nil {
		t.Error("expected an error for min length exceeding max length")
	}

	_, err := NewParser(badBounds)
	if err == nil {
		t.Error("expected NewParser to reject an invalid schema")
	}

	assertNoError(t, begSchema().Validate())
}

func TestRegistryLookup(t *testing.T) {
	registry, err := NewSchemaRegistry(begSchema())
	assertNoError(t, err)
	if registry.Lookup("BEG") == nil {
		t.Error("expected a registered schema for BEG")
	}
	if registry.Lookup("ZZZ") != nil {
		t.Error("expected no schema for ZZZ")
	}
}
