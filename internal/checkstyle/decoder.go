package checkstyle

import (
	"bufio"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"
)

const (
	rootElement      = "checkstyle"
	fileElement      = "file"
	violationElement = "error"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode reads a checkstyle XML report from r in a single streaming pass.
// A leading UTF-8 byte order mark is skipped. Unknown elements and attributes are ignored. The context is checked before
// every <file> and <error> element.
func Decode(ctx context.Context, r io.Reader) (*Report, error) {
	src := &sourceReader{r: r}
	br := bufio.NewReader(src)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}
	x := xml.NewDecoder(br)
	x.CharsetReader = charset.NewReaderLabel

	d := &decoder{ctx: ctx, src: src, xml: x}
	return d.decode()
}

// sourceReader remembers the first error of the underlying reader so that
// transport failures are not reported as malformed XML.
type sourceReader struct {
	r   io.Reader
	err error
}

func (s *sourceReader) Read(p []byte) (int, error) {
	n, err := s.r.Read(p)
	if err != nil && err != io.EOF && s.err == nil {
		s.err = err
	}
	return n, err
}

type decoder struct {
	ctx context.Context
	src *sourceReader
	xml *xml.Decoder
}

func (d *decoder) decode() (*Report, error) {
	for {
		tok, err := d.xml.Token()
		if err == io.EOF {
			return nil, d.fail(ErrNotThisFormat, errors.New("document has no root element"))
		}
		if err != nil {
			return nil, d.wrap(err)
		}

		if text, ok := tok.(xml.CharData); ok && len(strings.TrimSpace(string(text))) > 0 {
			return nil, d.fail(ErrMalformedInput, errors.New("unexpected text before the root element"))
		}
		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		if start.Name.Local != rootElement {
			// consume the foreign document so syntax errors win over the format mismatch
			if err := d.xml.Skip(); err != nil {
				return nil, d.wrap(err)
			}
			if err := d.expectEOF(); err != nil {
				return nil, err
			}
			return nil, d.fail(ErrNotThisFormat, fmt.Errorf("unexpected root element <%s>", start.Name.Local))
		}

		report := &Report{Version: attrValue(start, "version")}
		if err := d.decodeRoot(report); err != nil {
			return nil, err
		}
		if err := d.expectEOF(); err != nil {
			return nil, err
		}
		return report, nil
	}
}

func (d *decoder) decodeRoot(report *Report) error {
	for {
		tok, err := d.xml.Token()
		if err != nil {
			return d.wrap(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local != fileElement {
				if err := d.xml.Skip(); err != nil {
					return d.wrap(err)
				}
				continue
			}
			if err := d.checkCanceled(); err != nil {
				return err
			}
			file := File{Name: attrValue(t, "name")}
			if err := d.decodeFile(&file); err != nil {
				return err
			}
			report.Files = append(report.Files, file)
		case xml.EndElement:
			return nil
		}
	}
}

func (d *decoder) decodeFile(file *File) error {
	for {
		tok, err := d.xml.Token()
		if err != nil {
			return d.wrap(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == violationElement {
				if err := d.checkCanceled(); err != nil {
					return err
				}
				file.Violations = append(file.Violations, newViolation(t))
			}
			// children of <error> and unknown elements are ignored
			if err := d.xml.Skip(); err != nil {
				return d.wrap(err)
			}
		case xml.EndElement:
			return nil
		}
	}
}

// expectEOF rejects anything but comments, processing instructions and whitespace after the root element.
func (d *decoder) expectEOF() error {
	for {
		tok, err := d.xml.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return d.wrap(err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			return d.fail(ErrMalformedInput, fmt.Errorf("unexpected element <%s> after the root element", t.Name.Local))
		case xml.CharData:
			if len(strings.TrimSpace(string(t))) > 0 {
				return d.fail(ErrMalformedInput, errors.New("unexpected text after the root element"))
			}
		}
	}
}

func (d *decoder) checkCanceled() error {
	if err := d.ctx.Err(); err != nil {
		return d.fail(ErrParsingCanceled, err)
	}
	return nil
}

// wrap classifies an error returned by the XML tokenizer.
func (d *decoder) wrap(err error) error {
	if d.src.err != nil {
		return d.fail(ErrRead, d.src.err)
	}
	var syntaxErr *xml.SyntaxError
	if errors.As(err, &syntaxErr) {
		return &ParsingError{Kind: ErrMalformedInput, Line: syntaxErr.Line, Err: errors.New(syntaxErr.Msg)}
	}
	return d.fail(ErrMalformedInput, err)
}

func (d *decoder) fail(kind, err error) error {
	line, _ := d.xml.InputPos()
	return &ParsingError{Kind: kind, Line: line, Err: err}
}

func newViolation(start xml.StartElement) Violation {
	return Violation{
		Line:     intAttrValue(start, "line"),
		Column:   intAttrValue(start, "column"),
		Severity: attrValue(start, "severity"),
		Message:  attrValue(start, "message"),
		Source:   attrValue(start, "source"),
	}
}

func attrValue(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// intAttrValue returns 0 for missing, unparsable and negative values.
func intAttrValue(start xml.StartElement, name string) int {
	v, err := strconv.Atoi(strings.TrimSpace(attrValue(start, name)))
	if err != nil || v < 0 {
		return 0
	}
	return v
}
