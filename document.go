package x12doc

// Element is a single field value within a segment, together with the
// metadata the validation engine checks it against. For schema-known
// elements the bounds come from the segment schema; for generic elements
// they're synthesized equal to the observed content length, so generic
// data always validates.
type Element struct {
	Name        string `json:"name"`
	Content     string `json:"content"`
	Description string `json:"description,omitempty"`
	Required    bool   `json:"required"`
	MinLength   int    `json:"min_length"`
	MaxLength   int    `json:"max_length"`
}

// Segment is a delimited record within the flat text. Fields[0] is the
// segment ID element, whose content is the segment tag; ID points at it.
type Segment struct {
	ID         *Element   `json:"-"`
	Fields     []*Element `json:"fields"`
	FieldCount int        `json:"field_count"`
}

// Tag returns the segment's identifying tag (the ID element's name).
func (s *Segment) Tag() string {
	if s.ID == nil {
		return ""
	}
	return s.ID.Name
}

// fieldContent returns the content of the element at the given index, or
// an empty string if the index is out of range.
func (s *Segment) fieldContent(index int) string {
	if index < 0 || index >= len(s.Fields) {
		return ""
	}
	return s.Fields[index].Content
}

// TransactionSet is a single business document bounded by ST/SE segments.
// Body holds the segments between them, in document order - schema-known
// and generic segments interleaved.
type TransactionSet struct {
	Header  *Segment   `json:"header"`
	Trailer *Segment   `json:"trailer"`
	Body    []*Segment `json:"transaction_body"`
}

// TransactionSetCode returns ST01
func (t *TransactionSet) TransactionSetCode() string {
	return t.Header.fieldContent(stIndexTransactionSetCode)
}

// ControlNumber returns ST02
func (t *TransactionSet) ControlNumber() string {
	return t.Header.fieldContent(stIndexControlNumber)
}

// TrailerControlNumber returns SE02
func (t *TransactionSet) TrailerControlNumber() string {
	return t.Trailer.fieldContent(seIndexControlNumber)
}

// declaredSegmentCount returns SE01, the trailer's declared count of
// included segments (ST and SE themselves count)
func (t *TransactionSet) declaredSegmentCount() string {
	return t.Trailer.fieldContent(seIndexNumberOfIncludedSegments)
}

// segmentCount is the actual number of segments in the set, including the
// ST/SE envelope pair
func (t *TransactionSet) segmentCount() int {
	ct := len(t.Body)
	if t.Header != nil {
		ct++
	}
	if t.Trailer != nil {
		ct++
	}
	return ct
}

// Group is a functional group of transaction sets, bounded by GS/GE.
type Group struct {
	Header          *Segment          `json:"header"`
	Trailer         *Segment          `json:"trailer"`
	TransactionSets []*TransactionSet `json:"transaction_sets"`
}

// IdentifierCode returns GS01
func (g *Group) IdentifierCode() string {
	return g.Header.fieldContent(gsIndexFunctionalIdentifierCode)
}

// ControlNumber returns GS06
func (g *Group) ControlNumber() string {
	return g.Header.fieldContent(gsIndexControlNumber)
}

// TrailerControlNumber returns GE02
func (g *Group) TrailerControlNumber() string {
	return g.Trailer.fieldContent(geIndexControlNumber)
}

// declaredTransactionSetCount returns GE01
func (g *Group) declaredTransactionSetCount() string {
	return g.Trailer.fieldContent(geIndexNumberOfIncludedTransactionSets)
}

// Interchange is the top-level envelope, bounded by ISA/IEA. Exactly one
// exists per document.
type Interchange struct {
	Header  *Segment `json:"header"`
	Trailer *Segment `json:"trailer"`
	Groups  []*Group `json:"groups"`
}

// Config holds the delimiters resolved from the interchange header, and
// the detected version. Every split operation after delimiter resolution
// reads from it.
type Config struct {
	ElementSeparator    string `json:"element_separator"`
	SubElementSeparator string `json:"sub_element_separator"`
	SegmentTerminator   string `json:"segment_terminator"`
	Version             string `json:"version"`
}

// Document is the root of the assembled model.
type Document struct {
	Interchange *Interchange `json:"interchange"`
	Config      Config       `json:"config"`
	text        string
}

// NewDocument creates an empty Document with its interchange header and
// trailer pre-built from the envelope schemas.
func NewDocument() *Document {
	return &Document{
		Interchange: &Interchange{
			Header:  interchangeHeaderSchema.newSegment(),
			Trailer: interchangeTrailerSchema.newSegment(),
			Groups:  []*Group{},
		},
	}
}

// Text returns the raw document text as it was parsed, with newlines
// stripped.
func (d *Document) Text() string {
	return d.text
}

// ControlNumber returns ISA13
func (d *Document) ControlNumber() string {
	return d.Interchange.Header.fieldContent(isaIndexControlNumber)
}

// TrailerControlNumber returns IEA02
func (d *Document) TrailerControlNumber() string {
	return d.Interchange.Trailer.fieldContent(ieaIndexControlNumber)
}

// declaredGroupCount returns IEA01
func (d *Document) declaredGroupCount() string {
	return d.Interchange.Trailer.fieldContent(ieaIndexFunctionalGroupCount)
}

// SenderId returns ISA06
func (d *Document) SenderId() string {
	return d.Interchange.Header.fieldContent(isaIndexSenderId)
}

// ReceiverId returns ISA08
func (d *Document) ReceiverId() string {
	return d.Interchange.Header.fieldContent(isaIndexReceiverId)
}

// UsageIndicator returns ISA15
func (d *Document) UsageIndicator() string {
	return d.Interchange.Header.fieldContent(isaIndexUsageIndicator)
}

// Validate runs the validation engine over the assembled model. The
// traversal is read-only; diagnostics are accumulated, never thrown.
func (d *Document) Validate() *ValidationReport {
	v := &Validator{report: &ValidationReport{}}
	v.validateDocument(d)
	return v.report
}

// Payload converts the element to a nested mapping for serialization.
func (e *Element) Payload() map[string]any {
	return map[string]any{
		"name":        e.Name,
		"content":     e.Content,
		"description": e.Description,
		"required":    e.Required,
		"min_length":  e.MinLength,
		"max_length":  e.MaxLength,
	}
}

// Payload converts the segment to a nested mapping for serialization.
func (s *Segment) Payload() map[string]any {
	fields := make([]any, 0, len(s.Fields))
	for _, f := range s.Fields {
		fields = append(fields, f.Payload())
	}
	return map[string]any{
		"id":          s.Tag(),
		"field_count": s.FieldCount,
		"fields":      fields,
	}
}

func (t *TransactionSet) Payload() map[string]any {
	body := make([]any, 0, len(t.Body))
	for _, seg := range t.Body {
		body = append(body, seg.Payload())
	}
	return map[string]any{
		"header":           segmentPayload(t.Header),
		"trailer":          segmentPayload(t.Trailer),
		"transaction_body": body,
	}
}

func (g *Group) Payload() map[string]any {
	transactionSets := make([]any, 0, len(g.TransactionSets))
	for _, t := range g.TransactionSets {
		transactionSets = append(transactionSets, t.Payload())
	}
	return map[string]any{
		"header":           segmentPayload(g.Header),
		"trailer":          segmentPayload(g.Trailer),
		"transaction_sets": transactionSets,
	}
}

func (i *Interchange) Payload() map[string]any {
	groups := make([]any, 0, len(i.Groups))
	for _, g := range i.Groups {
		groups = append(groups, g.Payload())
	}
	return map[string]any{
		"header":  segmentPayload(i.Header),
		"trailer": segmentPayload(i.Trailer),
		"groups":  groups,
	}
}

// Payload converts the whole document model to a nested mapping, the form
// handed to the serialization adapters.
func (d *Document) Payload() map[string]any {
	return map[string]any{
		"interchange": d.Interchange.Payload(),
		"config": map[string]any{
			"element_separator":     d.Config.ElementSeparator,
			"sub_element_separator": d.Config.SubElementSeparator,
			"segment_terminator":    d.Config.SegmentTerminator,
			"version":               d.Config.Version,
		},
	}
}

func segmentPayload(s *Segment) any {
	if s == nil {
		return nil
	}
	return s.Payload()
}
