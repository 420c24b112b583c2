// Package export converts assembled documents into JSON or XML files.
package export

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/x12io/x12doc"
)

// Format selects the output encoding.
type Format string

const (
	JSON Format = "JSON"
	XML  Format = "XML"
)

// ParseFormat converts a user-supplied format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToUpper(strings.TrimSpace(s))) {
	case JSON:
		return JSON, nil
	case XML:
		return XML, nil
	}
	return "", fmt.Errorf("unknown export format %q (expected JSON or XML)", s)
}

// Extension returns the file extension for the format, dot included.
func (f Format) Extension() string {
	if f == XML {
		return ".xml"
	}
	return ".json"
}

// Write encodes the document and writes it to
// <outputDir>/<baseName><ext>, creating the directory if needed. It
// returns the path written.
func Write(
	doc *x12doc.Document,
	format Format,
	outputDir string,
	baseName string,
) (string, error) {
	var data []byte
	var err error
	switch format {
	case JSON:
		data, err = EncodeJSON(doc)
	case XML:
		data, err = EncodeXML(doc)
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
	if err != nil {
		return "", err
	}

	if err = os.MkdirAll(outputDir, 0o755); err != nil {
		return "", err
	}
	outPath := filepath.Join(outputDir, baseName+format.Extension())
	if err = os.WriteFile(outPath, data, 0o644); err != nil {
		return "", err
	}
	return outPath, nil
}

// EncodeJSON renders the document payload as indented JSON.
func EncodeJSON(doc *x12doc.Document) ([]byte, error) {
	return json.MarshalIndent(doc.Payload(), "", "  ")
}

// EncodeXML renders the document as indented XML, walking the model
// directly so element order is preserved.
func EncodeXML(doc *x12doc.Document) ([]byte, error) {
	var b strings.Builder
	enc := xml.NewEncoder(&b)
	enc.Indent("", "  ")

	if err := encodeDocument(enc, doc); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func encodeDocument(enc *xml.Encoder, doc *x12doc.Document) error {
	root := xml.StartElement{Name: xml.Name{Local: "document"}}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}
	if err := encodeConfig(enc, doc.Config); err != nil {
		return err
	}
	if err := encodeInterchange(enc, doc.Interchange); err != nil {
		return err
	}
	return enc.EncodeToken(root.End())
}

func encodeConfig(enc *xml.Encoder, cfg x12doc.Config) error {
	start := xml.StartElement{
		Name: xml.Name{Local: "config"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "elementSeparator"}, Value: cfg.ElementSeparator},
			{Name: xml.Name{Local: "subElementSeparator"}, Value: cfg.SubElementSeparator},
			{Name: xml.Name{Local: "segmentTerminator"}, Value: cfg.SegmentTerminator},
			{Name: xml.Name{Local: "version"}, Value: cfg.Version},
		},
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}

func encodeInterchange(enc *xml.Encoder, interchange *x12doc.Interchange) error {
	start := xml.StartElement{Name: xml.Name{Local: "interchange"}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if err := encodeSegment(enc, "header", interchange.Header); err != nil {
		return err
	}
	for _, group := range interchange.Groups {
		if err := encodeGroup(enc, group); err != nil {
			return err
		}
	}
	if err := encodeSegment(enc, "trailer", interchange.Trailer); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}

func encodeGroup(enc *xml.Encoder, group *x12doc.Group) error {
	start := xml.StartElement{Name: xml.Name{Local: "group"}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if err := encodeSegment(enc, "header", group.Header); err != nil {
		return err
	}
	for _, transactionSet := range group.TransactionSets {
		if err := encodeTransactionSet(enc, transactionSet); err != nil {
			return err
		}
	}
	if err := encodeSegment(enc, "trailer", group.Trailer); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}

func encodeTransactionSet(enc *xml.Encoder, t *x12doc.TransactionSet) error {
	start := xml.StartElement{Name: xml.Name{Local: "transactionSet"}}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if err := encodeSegment(enc, "header", t.Header); err != nil {
		return err
	}
	for _, segment := range t.Body {
		if err := encodeSegment(enc, "segment", segment); err != nil {
			return err
		}
	}
	if err := encodeSegment(enc, "trailer", t.Trailer); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}

func encodeSegment(enc *xml.Encoder, label string, segment *x12doc.Segment) error {
	if segment == nil {
		return nil
	}
	start := xml.StartElement{
		Name: xml.Name{Local: label},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "id"}, Value: segment.Tag()},
			{Name: xml.Name{Local: "fieldCount"}, Value: fmt.Sprintf("%d", segment.FieldCount)},
		},
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, element := range segment.Fields {
		if err := encodeElement(enc, element); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

func encodeElement(enc *xml.Encoder, element *x12doc.Element) error {
	start := xml.StartElement{
		Name: xml.Name{Local: "element"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "name"}, Value: element.Name},
			{Name: xml.Name{Local: "required"}, Value: fmt.Sprintf("%t", element.Required)},
		},
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	if err := enc.EncodeToken(xml.CharData(element.Content)); err != nil {
		return err
	}
	return enc.EncodeToken(start.End())
}
