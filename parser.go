package x12doc

import (
	"fmt"
	"os"
	"strings"
)

// Parser assembles a Document from the flat text of a single interchange.
// The current-group/current-transaction scan state is scoped to one parse
// invocation and is not reentrant: use one Parser per document when
// parsing concurrently.
type Parser struct {
	doc                *Document
	text               string
	currentGroup       *Group
	currentTransaction *TransactionSet
	registry           *SchemaRegistry
}

// NewParser creates a Parser. Any given schemas are registered for
// business segment tags, so those segments are parsed schema-known
// instead of generically.
func NewParser(schemas ...*SegmentSchema) (*Parser, error) {
	registry, err := NewSchemaRegistry(schemas...)
	if err != nil {
		return nil, err
	}
	return &Parser{registry: registry}, nil
}

// Parse parses the given text with a fresh Parser and no registered
// business segment schemas.
func Parse(text string) (*Document, error) {
	p, _ := NewParser()
	return p.Parse(text)
}

// ParseFile reads the file at the given path and parses its contents.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(string(data))
}

// Parse parses the text into a Document. The returned error is always a
// hard parse failure (wrapped ParseError); "parsed but invalid" is
// reported separately, via Document.Validate.
//
// The parse is two-phase: the delimiters are resolved from the
// interchange header first, then the rest of the text is split and routed
// with them.
func (p *Parser) Parse(text string) (*Document, error) {
	p.doc = NewDocument()
	p.currentGroup = nil
	p.currentTransaction = nil

	// Segment boundaries are defined solely by the terminator character -
	// line breaks have no significance in this format.
	text = scrubText(text)
	p.text = text
	p.doc.text = text

	if !strings.HasPrefix(text, isaSegmentId) {
		return nil, newFileTypeError(isaSegmentId, text)
	}
	if err := p.resolveDelimiters(); err != nil {
		return nil, err
	}
	p.routeSegments()
	return p.doc, nil
}

// scrubText strips newlines and surrounding whitespace before
// tokenization.
func scrubText(text string) string {
	replacer := strings.NewReplacer("\r\n", "", "\r", "", "\n", "")
	return strings.TrimSpace(replacer.Replace(text))
}

// resolveDelimiters extracts the element separator, sub-element separator
// and segment terminator from the interchange header, and populates the
// header's fixed elements. The element separator is always the single
// character immediately following the header tag; the final header field
// carries the sub-element separator as its first character and the
// segment terminator as its second.
func (p *Parser) resolveDelimiters() error {
	cfg := &p.doc.Config
	if len(p.text) <= isaElementSeparatorIndex {
		return fmt.Errorf(
			"%w: %w: text too short to carry an element separator (length: %d)",
			ParseError,
			ErrInvalidHeader,
			len(p.text),
		)
	}
	cfg.ElementSeparator = p.text[isaElementSeparatorIndex : isaElementSeparatorIndex+1]

	header := p.doc.Interchange.Header
	headerFields := strings.Split(p.text, cfg.ElementSeparator)
	if len(headerFields) < isaElementCount {
		return fmt.Errorf(
			"%w: %w: expected %d header elements, got %d",
			ParseError,
			ErrInvalidHeader,
			isaElementCount,
			len(headerFields),
		)
	}

	for index, value := range headerFields {
		if index == isaIndexVersion {
			cfg.Version = value
		}
		if index < isaIndexComponentElementSeparator {
			header.Fields[index].Content = value
			continue
		}

		// The sub-element separator is always the first character of the
		// final header field; the terminator, if present, is the second.
		if value == "" || len(value) < 2 {
			return fmt.Errorf(
				"%w: %w: the interchange header's final element does not carry a terminator character",
				ParseError,
				ErrTerminatorNotFound,
			)
		}
		cfg.SubElementSeparator = value[0:1]
		cfg.SegmentTerminator = value[1:2]
		header.Fields[isaIndexComponentElementSeparator].Content = cfg.SubElementSeparator
		break
	}
	return nil
}

// routeSegments splits the whole document by the resolved terminator and
// routes each raw segment in order, classifying it by its leading tag.
// Header tags are tested before trailer tags, with generic synthesis as
// the fallback.
func (p *Parser) routeSegments() {
	segments := strings.Split(p.text, p.doc.Config.SegmentTerminator)
	for _, rawSegment := range segments {
		p.routeSegment(rawSegment)
	}
}

func (p *Parser) routeSegment(rawSegment string) {
	switch {
	case strings.HasPrefix(rawSegment, isaSegmentId):
		// already consumed during delimiter resolution
	case strings.HasPrefix(rawSegment, gsSegmentId):
		p.parseGroupHeader(rawSegment)
	case strings.HasPrefix(rawSegment, geSegmentId):
		p.parseGroupTrailer(rawSegment)
	case strings.HasPrefix(rawSegment, stSegmentId):
		p.parseTransactionSetHeader(rawSegment)
	case strings.HasPrefix(rawSegment, seSegmentId):
		p.parseTransactionSetTrailer(rawSegment)
	case strings.HasPrefix(rawSegment, ieaSegmentId):
		p.parseInterchangeTrailer(rawSegment)
	default:
		p.parseUnknownBody(rawSegment)
	}
}

// populateSegment fills a schema-built segment's elements positionally
// from the raw field values. Values beyond the declared field count are
// dropped; the validation engine reports structural anomalies, not the
// router.
func (p *Parser) populateSegment(segment *Segment, fieldValues []string) {
	for index, value := range fieldValues {
		if index >= len(segment.Fields) {
			break
		}
		segment.Fields[index].Content = value
	}
}

func (p *Parser) splitFields(rawSegment string) []string {
	return strings.Split(rawSegment, p.doc.Config.ElementSeparator)
}

// parseGroupHeader opens a new Group and holds it as the scan's current
// group. Only one group may be open at a time - nesting is not recursive
// in this format.
func (p *Parser) parseGroupHeader(rawSegment string) {
	p.currentGroup = &Group{TransactionSets: []*TransactionSet{}}
	header := groupHeaderSchema.newSegment()
	p.populateSegment(header, p.splitFields(rawSegment))
	p.currentGroup.Header = header
}

// parseGroupTrailer closes the current group, moving it into the
// interchange's group list. A trailer with no open group is dropped; the
// count checks in the validation engine surface the mismatch.
func (p *Parser) parseGroupTrailer(rawSegment string) {
	if p.currentGroup == nil {
		return
	}
	trailer := groupTrailerSchema.newSegment()
	p.populateSegment(trailer, p.splitFields(rawSegment))
	p.currentGroup.Trailer = trailer
	p.doc.Interchange.Groups = append(p.doc.Interchange.Groups, p.currentGroup)
	p.currentGroup = nil
}

func (p *Parser) parseTransactionSetHeader(rawSegment string) {
	p.currentTransaction = &TransactionSet{Body: []*Segment{}}
	header := transactionSetHeaderSchema.newSegment()
	p.populateSegment(header, p.splitFields(rawSegment))
	p.currentTransaction.Header = header
}

// parseTransactionSetTrailer closes the current transaction set and
// appends it to the current group's list.
func (p *Parser) parseTransactionSetTrailer(rawSegment string) {
	if p.currentTransaction == nil {
		return
	}
	trailer := transactionSetTrailerSchema.newSegment()
	p.populateSegment(trailer, p.splitFields(rawSegment))
	p.currentTransaction.Trailer = trailer
	if p.currentGroup != nil {
		p.currentGroup.TransactionSets = append(
			p.currentGroup.TransactionSets,
			p.currentTransaction,
		)
	}
	p.currentTransaction = nil
}

func (p *Parser) parseInterchangeTrailer(rawSegment string) {
	p.populateSegment(p.doc.Interchange.Trailer, p.splitFields(rawSegment))
}

// parseUnknownBody handles any segment whose tag is not a structural
// envelope tag. If a schema is registered for the tag, the segment is
// parsed schema-known; otherwise one is synthesized from the data itself.
// Segments appearing outside any open transaction set are dropped - that
// isn't an error at this layer.
func (p *Parser) parseUnknownBody(rawSegment string) {
	if rawSegment == "" {
		return
	}
	fieldValues := p.splitFields(rawSegment)

	var segment *Segment
	if schema := p.lookupSchema(fieldValues[0]); schema != nil {
		segment = schema.newSegment()
		p.populateSegment(segment, fieldValues)
	} else {
		segment = newGenericSegment(fieldValues)
	}

	if p.currentTransaction != nil {
		p.currentTransaction.Body = append(p.currentTransaction.Body, segment)
	}
}

func (p *Parser) lookupSchema(tag string) *SegmentSchema {
	if p.registry == nil {
		return nil
	}
	return p.registry.Lookup(tag)
}

const genericElementDescription = "generic element synthesized by the parser"

// newGenericSegment synthesizes a schema-less segment. The first field's
// content is both the segment ID and the name prefix for every subsequent
// field: tag ZZZ yields element names ZZZ, ZZZ01, ZZZ02, and so on. Each
// element's bounds are set to the observed content length and required is
// false, so whatever was observed is, by definition, valid.
func newGenericSegment(fieldValues []string) *Segment {
	name := fieldValues[0]
	fields := make([]*Element, 0, len(fieldValues))
	for index, value := range fieldValues {
		elementName := name
		if index > 0 {
			elementName = fmt.Sprintf("%s%02d", name, index)
		}
		fields = append(fields, &Element{
			Name:        elementName,
			Content:     value,
			Description: genericElementDescription,
			Required:    false,
			MinLength:   len(value),
			MaxLength:   len(value),
		})
	}
	return &Segment{
		ID:         fields[0],
		Fields:     fields,
		FieldCount: len(fields),
	}
}
