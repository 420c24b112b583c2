package x12doc

import (
	"errors"
	"fmt"
	"sync"
)

// FieldSpec describes one positional element of a schema-known segment.
// MinLength/MaxLength bound the element content; they are checked by the
// validation engine, not enforced at construction.
type FieldSpec struct {
	Name        string
	Description string
	Required    bool
	MinLength   int
	MaxLength   int
}

// SegmentSchema is a fixed positional field layout for a segment tag.
// Fields[0] is the segment ID element, whose content is the tag itself.
type SegmentSchema struct {
	Tag    string
	Fields []FieldSpec
}

// Validate checks the schema for internal consistency.
func (s *SegmentSchema) Validate() error {
	var schemaErrors []error
	if s.Tag == "" {
		schemaErrors = append(schemaErrors, errors.New("schema has no tag"))
	}
	if len(s.Fields) == 0 {
		schemaErrors = append(
			schemaErrors,
			fmt.Errorf("schema '%s' has no fields", s.Tag),
		)
	} else if s.Fields[0].Name != s.Tag {
		schemaErrors = append(
			schemaErrors,
			fmt.Errorf(
				"schema '%s': first field name '%s' must match the tag",
				s.Tag,
				s.Fields[0].Name,
			),
		)
	}
	for _, f := range s.Fields {
		if f.MinLength > f.MaxLength {
			schemaErrors = append(
				schemaErrors,
				fmt.Errorf(
					"schema '%s' field '%s': min length %d exceeds max length %d",
					s.Tag,
					f.Name,
					f.MinLength,
					f.MaxLength,
				),
			)
		}
	}
	return errors.Join(schemaErrors...)
}

// newSegment builds an empty Segment with the schema's field layout.
// Element content is populated later, when the router parses a raw segment
// into it.
func (s *SegmentSchema) newSegment() *Segment {
	fields := make([]*Element, len(s.Fields))
	for i, fs := range s.Fields {
		fields[i] = &Element{
			Name:        fs.Name,
			Description: fs.Description,
			Required:    fs.Required,
			MinLength:   fs.MinLength,
			MaxLength:   fs.MaxLength,
		}
	}
	return &Segment{
		ID:         fields[0],
		Fields:     fields,
		FieldCount: len(fields),
	}
}

// tagField is the FieldSpec for a segment ID element.
func tagField(tag string, description string) FieldSpec {
	return FieldSpec{
		Name:        tag,
		Description: description,
		Required:    true,
		MinLength:   len(tag),
		MaxLength:   len(tag),
	}
}

// Envelope segment schemas. These are the only built-in schemas: every
// business segment is synthesized generically unless a schema for its tag
// is registered.
var (
	interchangeHeaderSchema = &SegmentSchema{
		Tag: isaSegmentId,
		Fields: []FieldSpec{
			tagField(isaSegmentId, "Interchange Control Header"),
			{Name: "ISA01", Description: "Authorization Information Qualifier", Required: true, MinLength: isaLenAuthInfoQualifier, MaxLength: isaLenAuthInfoQualifier},
			{Name: "ISA02", Description: "Authorization Information", Required: true, MinLength: isaLenAuthInfo, MaxLength: isaLenAuthInfo},
			{Name: "ISA03", Description: "Security Information Qualifier", Required: true, MinLength: isaLenSecurityInfoQualifier, MaxLength: isaLenSecurityInfoQualifier},
			{Name: "ISA04", Description: "Security Information", Required: true, MinLength: isaLenSecurityInfo, MaxLength: isaLenSecurityInfo},
			{Name: "ISA05", Description: "Interchange ID Qualifier", Required: true, MinLength: isaLenSenderIdQualifier, MaxLength: isaLenSenderIdQualifier},
			{Name: "ISA06", Description: "Interchange Sender ID", Required: true, MinLength: isaLenSenderId, MaxLength: isaLenSenderId},
			{Name: "ISA07", Description: "Interchange ID Qualifier", Required: true, MinLength: isaLenReceiverIdQualifier, MaxLength: isaLenReceiverIdQualifier},
			{Name: "ISA08", Description: "Interchange Receiver ID", Required: true, MinLength: isaLenReceiverId, MaxLength: isaLenReceiverId},
			{Name: "ISA09", Description: "Interchange Date", Required: true, MinLength: isaLenDate, MaxLength: isaLenDate},
			{Name: "ISA10", Description: "Interchange Time", Required: true, MinLength: isaLenTime, MaxLength: isaLenTime},
			{Name: "ISA11", Description: "Repetition Separator", Required: true, MinLength: isaLenRepetitionSeparator, MaxLength: isaLenRepetitionSeparator},
			{Name: "ISA12", Description: "Interchange Control Version Number", Required: true, MinLength: isaLenVersion, MaxLength: isaLenVersion},
			{Name: "ISA13", Description: "Interchange Control Number", Required: true, MinLength: isaLenControlNumber, MaxLength: isaLenControlNumber},
			{Name: "ISA14", Description: "Acknowledgment Requested", Required: true, MinLength: isaLenAckRequested, MaxLength: isaLenAckRequested},
			{Name: "ISA15", Description: "Usage Indicator", Required: true, MinLength: isaLenUsageIndicator, MaxLength: isaLenUsageIndicator},
			{Name: "ISA16", Description: "Component Element Separator", Required: true, MinLength: isaLenComponentSeparator, MaxLength: isaLenComponentSeparator},
		},
	}
	interchangeTrailerSchema = &SegmentSchema{
		Tag: ieaSegmentId,
		Fields: []FieldSpec{
			tagField(ieaSegmentId, "Interchange Control Trailer"),
			{Name: "IEA01", Description: "Number of Included Functional Groups", Required: true, MinLength: 1, MaxLength: 5},
			{Name: "IEA02", Description: "Interchange Control Number", Required: true, MinLength: 9, MaxLength: 9},
		},
	}
	groupHeaderSchema = &SegmentSchema{
		Tag: gsSegmentId,
		Fields: []FieldSpec{
			tagField(gsSegmentId, "Functional Group Header"),
			{Name: "GS01", Description: "Functional Identifier Code", Required: true, MinLength: 2, MaxLength: 2},
			{Name: "GS02", Description: "Application Sender's Code", Required: true, MinLength: 2, MaxLength: 15},
			{Name: "GS03", Description: "Application Receiver's Code", Required: true, MinLength: 2, MaxLength: 15},
			{Name: "GS04", Description: "Date", Required: true, MinLength: 8, MaxLength: 8},
			{Name: "GS05", Description: "Time", Required: true, MinLength: 4, MaxLength: 8},
			{Name: "GS06", Description: "Group Control Number", Required: true, MinLength: 1, MaxLength: 9},
			{Name: "GS07", Description: "Responsible Agency Code", Required: true, MinLength: 1, MaxLength: 2},
			{Name: "GS08", Description: "Version / Release / Industry Identifier Code", Required: true, MinLength: 1, MaxLength: 12},
		},
	}
	groupTrailerSchema = &SegmentSchema{
		Tag: geSegmentId,
		Fields: []FieldSpec{
			tagField(geSegmentId, "Functional Group Trailer"),
			{Name: "GE01", Description: "Number of Transaction Sets Included", Required: true, MinLength: 1, MaxLength: 6},
			{Name: "GE02", Description: "Group Control Number", Required: true, MinLength: 1, MaxLength: 9},
		},
	}
	transactionSetHeaderSchema = &SegmentSchema{
		Tag: stSegmentId,
		Fields: []FieldSpec{
			tagField(stSegmentId, "Transaction Set Header"),
			{Name: "ST01", Description: "Transaction Set Identifier Code", Required: true, MinLength: 3, MaxLength: 3},
			{Name: "ST02", Description: "Transaction Set Control Number", Required: true, MinLength: 4, MaxLength: 9},
			{Name: "ST03", Description: "Implementation Convention Reference", Required: false, MinLength: 1, MaxLength: 35},
		},
	}
	transactionSetTrailerSchema = &SegmentSchema{
		Tag: seSegmentId,
		Fields: []FieldSpec{
			tagField(seSegmentId, "Transaction Set Trailer"),
			{Name: "SE01", Description: "Number of Included Segments", Required: true, MinLength: 1, MaxLength: 10},
			{Name: "SE02", Description: "Transaction Set Control Number", Required: true, MinLength: 4, MaxLength: 9},
		},
	}
)

// SchemaRegistry maps segment tags to fixed field layouts. The router
// consults it before falling back to generic synthesis, so stricter
// validation for specific business segment types can be added without
// touching the routing itself. The envelope tags (ISA/GS/GE/ST/SE/IEA)
// are routed structurally and cannot be overridden here.
type SchemaRegistry struct {
	schemas   map[string]*SegmentSchema
	schemasMu sync.RWMutex
}

func NewSchemaRegistry(schemas ...*SegmentSchema) (*SchemaRegistry, error) {
	r := &SchemaRegistry{schemas: make(map[string]*SegmentSchema)}
	var registerErrors []error
	for _, s := range schemas {
		if err := r.Register(s); err != nil {
			registerErrors = append(registerErrors, err)
		}
	}
	return r, errors.Join(registerErrors...)
}

var envelopeTags = map[string]bool{
	isaSegmentId: true,
	ieaSegmentId: true,
	gsSegmentId:  true,
	geSegmentId:  true,
	stSegmentId:  true,
	seSegmentId:  true,
}

// Register adds the given schema, replacing any existing schema with the
// same tag.
func (r *SchemaRegistry) Register(schema *SegmentSchema) error {
	if err := schema.Validate(); err != nil {
		return err
	}
	if envelopeTags[schema.Tag] {
		return fmt.Errorf(
			"cannot register schema for structural envelope tag '%s'",
			schema.Tag,
		)
	}
	r.schemasMu.Lock()
	defer r.schemasMu.Unlock()
	r.schemas[schema.Tag] = schema
	return nil
}

// Lookup returns the schema registered for the given tag, or nil.
func (r *SchemaRegistry) Lookup(tag string) *SegmentSchema {
	r.schemasMu.RLock()
	defer r.schemasMu.RUnlock()
	return r.schemas[tag]
}
