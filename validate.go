package x12doc

import (
	"errors"
	"fmt"
	"strconv"
)

// Soft diagnostic kinds. These never abort anything - they're accumulated
// into a ValidationReport and surfaced when the caller inspects it.
var (
	ValidationError           = errors.New("validation error")
	ErrElementBadLength       = errors.New("element value length out of bounds")
	ErrRequiredElementMissing = errors.New("missing required element")
	ErrSegmentCountMismatch   = errors.New("declared segment count does not match")
	ErrControlNumberMismatch  = errors.New("control numbers do not match")
)

// Diagnostic is a single validation finding: a message plus the offending
// context (the segment tag and, for field-level findings, the element
// name). Err wraps one of the diagnostic sentinel kinds.
type Diagnostic struct {
	Err     error  `json:"-"`
	Message string `json:"message"`
	Context string `json:"context"`
}

// ValidationReport is the ordered list of diagnostics produced by one
// traversal of a Document.
type ValidationReport struct {
	Errors []Diagnostic `json:"error_list"`
}

// IsDocumentValid reports whether the traversal found no defects.
func (r *ValidationReport) IsDocumentValid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationReport) add(context string, err error) {
	if err == nil {
		return
	}
	r.Errors = append(r.Errors, Diagnostic{
		Err:     err,
		Message: err.Error(),
		Context: context,
	})
}

// Validator walks an assembled Document and accumulates diagnostics. The
// traversal never mutates the model.
type Validator struct {
	report *ValidationReport
}

func (v *Validator) validateDocument(d *Document) {
	interchange := d.Interchange
	v.validateSegment(interchange.Header)
	v.validateSegment(interchange.Trailer)

	v.checkChildCount(
		interchange.Trailer,
		d.declaredGroupCount(),
		len(interchange.Groups),
		"functional groups",
	)
	v.checkControlNumbers(
		interchange.Header.Tag(),
		interchange.Trailer.Tag(),
		d.ControlNumber(),
		d.TrailerControlNumber(),
	)

	for _, group := range interchange.Groups {
		v.validateGroup(group)
	}
}

func (v *Validator) validateGroup(g *Group) {
	v.validateSegment(g.Header)
	v.validateSegment(g.Trailer)

	v.checkChildCount(
		g.Trailer,
		g.declaredTransactionSetCount(),
		len(g.TransactionSets),
		"transaction sets",
	)
	v.checkControlNumbers(
		g.Header.Tag(),
		g.Trailer.Tag(),
		g.ControlNumber(),
		g.TrailerControlNumber(),
	)

	for _, transactionSet := range g.TransactionSets {
		v.validateTransactionSet(transactionSet)
	}
}

func (v *Validator) validateTransactionSet(t *TransactionSet) {
	v.validateSegment(t.Header)
	v.validateSegment(t.Trailer)

	// SE01 counts every segment in the set, the ST/SE envelope included
	v.checkChildCount(
		t.Trailer,
		t.declaredSegmentCount(),
		t.segmentCount(),
		"segments",
	)
	v.checkControlNumbers(
		t.Header.Tag(),
		t.Trailer.Tag(),
		t.ControlNumber(),
		t.TrailerControlNumber(),
	)

	for _, segment := range t.Body {
		v.validateSegment(segment)
	}
}

// validateSegment checks every element of the segment against its
// declared metadata. Generic elements carry bounds equal to their own
// content, so they can never produce a diagnostic.
func (v *Validator) validateSegment(s *Segment) {
	if s == nil {
		return
	}
	for _, element := range s.Fields {
		v.validateElement(s.Tag(), element)
	}
}

func (v *Validator) validateElement(segmentTag string, element *Element) {
	context := fmt.Sprintf("%s/%s", segmentTag, element.Name)
	if element.Content == "" {
		if element.Required {
			v.report.add(
				context,
				fmt.Errorf("%w: %w", ValidationError, ErrRequiredElementMissing),
			)
		}
		return
	}

	contentLength := len(element.Content)
	if element.MaxLength != 0 && contentLength > element.MaxLength {
		v.report.add(
			context,
			fmt.Errorf(
				"%w: %w (length: %d, max: %d)",
				ValidationError,
				ErrElementBadLength,
				contentLength,
				element.MaxLength,
			),
		)
	} else if element.MinLength != 0 && contentLength < element.MinLength {
		v.report.add(
			context,
			fmt.Errorf(
				"%w: %w (length: %d, min: %d)",
				ValidationError,
				ErrElementBadLength,
				contentLength,
				element.MinLength,
			),
		)
	}
}

// checkChildCount compares a trailer's declared child count against the
// number of children actually enclosed.
func (v *Validator) checkChildCount(
	trailer *Segment,
	declared string,
	actual int,
	childKind string,
) {
	if trailer == nil {
		return
	}
	declaredCount, err := strconv.Atoi(declared)
	if err != nil {
		v.report.add(
			trailer.Tag(),
			fmt.Errorf(
				"%w: %w: declared %s count %q is not numeric",
				ValidationError,
				ErrSegmentCountMismatch,
				childKind,
				declared,
			),
		)
		return
	}
	if declaredCount != actual {
		v.report.add(
			trailer.Tag(),
			fmt.Errorf(
				"%w: %w: expected %d %s, got %d",
				ValidationError,
				ErrSegmentCountMismatch,
				declaredCount,
				childKind,
				actual,
			),
		)
	}
}

// checkControlNumbers compares a header/trailer control number pair.
func (v *Validator) checkControlNumbers(
	headerTag string,
	trailerTag string,
	headerValue string,
	trailerValue string,
) {
	if headerValue == trailerValue {
		return
	}
	v.report.add(
		fmt.Sprintf("%s/%s", headerTag, trailerTag),
		fmt.Errorf(
			"%w: %w: %s control number %q does not match %s control number %q",
			ValidationError,
			ErrControlNumberMismatch,
			headerTag,
			headerValue,
			trailerTag,
			trailerValue,
		),
	)
}
