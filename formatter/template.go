package formatter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/philipp01105/asynclog/core"
)

// DefaultTemplate is used when a handler is configured without a formatter.
const DefaultTemplate = "{asctime} [{level}] {name}: {msg}"

type segmentKind uint8

const (
	literalSegment segmentKind = iota
	asctimeSegment
	levelSegment
	nameSegment
	msgSegment
	metaSegment
)

var placeholders = map[string]segmentKind{
	"asctime": asctimeSegment,
	"level":   levelSegment,
	"name":    nameSegment,
	"msg":     msgSegment,
	"meta":    metaSegment,
}

type segment struct {
	kind segmentKind
	lit  string
}

// TemplateFormatter renders records through a parsed template string.
type TemplateFormatter struct {
	template string
	segments []segment
}

// NewTemplateFormatter parses tmpl. Placeholders are written {name}; {{ and
// }} produce literal braces. An empty tmpl selects DefaultTemplate.
func NewTemplateFormatter(tmpl string) (*TemplateFormatter, error) {
	if tmpl == "" {
		tmpl = DefaultTemplate
	}
	segs, err := parseTemplate(tmpl)
	if err != nil {
		return nil, err
	}
	return &TemplateFormatter{template: tmpl, segments: segs}, nil
}

// MustTemplateFormatter is like NewTemplateFormatter but panics on error.
func MustTemplateFormatter(tmpl string) *TemplateFormatter {
	f, err := NewTemplateFormatter(tmpl)
	if err != nil {
		panic(err)
	}
	return f
}

// Template returns the template the formatter was built from.
func (f *TemplateFormatter) Template() string {
	return f.template
}

func parseTemplate(tmpl string) ([]segment, error) {
	var segs []segment
	var lit strings.Builder

	flushLiteral := func() {
		if lit.Len() > 0 {
			segs = append(segs, segment{kind: literalSegment, lit: lit.String()})
			lit.Reset()
		}
	}

	for i := 0; i < len(tmpl); i++ {
		c := tmpl[i]
		switch c {
		case '{':
			if i+1 < len(tmpl) && tmpl[i+1] == '{' {
				lit.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(tmpl[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("%w: unclosed placeholder at offset %d in template %q", core.ErrInvalidConfig, i, tmpl)
			}
			name := tmpl[i+1 : i+1+end]
			kind, ok := placeholders[name]
			if !ok {
				return nil, fmt.Errorf("%w: unknown placeholder {%s} in template %q", core.ErrInvalidConfig, name, tmpl)
			}
			flushLiteral()
			segs = append(segs, segment{kind: kind})
			i += end + 1
		case '}':
			if i+1 < len(tmpl) && tmpl[i+1] == '}' {
				lit.WriteByte('}')
				i++
				continue
			}
			return nil, fmt.Errorf("%w: single '}' at offset %d in template %q", core.ErrInvalidConfig, i, tmpl)
		default:
			lit.WriteByte(c)
		}
	}
	flushLiteral()
	return segs, nil
}

// Format renders r
func (f *TemplateFormatter) Format(r *core.Record) string {
	return formatWith(f, r)
}

// FormatTo appends the rendered record to buf (implements BufferFormatter).
func (f *TemplateFormatter) FormatTo(buf *bytes.Buffer, r *core.Record) {
	for _, s := range f.segments {
		switch s.kind {
		case literalSegment:
			buf.WriteString(s.lit)
		case asctimeSegment:
			// Use AppendFormat to avoid a string allocation
			buf.Write(r.Time().AppendFormat(buf.AvailableBuffer(), TimestampLayout))
		case levelSegment:
			buf.WriteString(r.Level().String())
		case nameSegment:
			buf.WriteString(r.Name())
		case msgSegment:
			buf.WriteString(r.Message())
		case metaSegment:
			appendMeta(buf, r)
		}
	}
}
