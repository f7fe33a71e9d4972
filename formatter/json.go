package formatter

import (
	"bytes"
	"math"
	"strconv"
	"time"

	"github.com/philipp01105/asynclog/core"
)

// clashPrefix is prepended to metadata keys that collide with a reserved key
const clashPrefix = "fields."

var reservedJSONKeys = map[string]bool{
	"time":    true,
	"level":   true,
	"seq":     true,
	"logger":  true,
	"message": true,
}

// JSONFormatter renders records as single-line JSON objects. The keys
// time, level, seq, logger and message are reserved; metadata using one of
// them is written as fields.<key>.
type JSONFormatter struct {
	timestampLayout string
}

// NewJSONFormatter creates a new JSON formatter. An empty layout selects
// TimestampLayout.
func NewJSONFormatter(layout string) *JSONFormatter {
	if layout == "" {
		layout = TimestampLayout
	}
	return &JSONFormatter{timestampLayout: layout}
}

// Format renders r as JSON
func (f *JSONFormatter) Format(r *core.Record) string {
	return formatWith(f, r)
}

// FormatTo renders r as JSON into the given buffer (implements BufferFormatter).
func (f *JSONFormatter) FormatTo(buf *bytes.Buffer, r *core.Record) {
	buf.WriteByte('{')

	buf.WriteString(`"time":"`)
	buf.Write(r.Time().AppendFormat(buf.AvailableBuffer(), f.timestampLayout))
	buf.WriteByte('"')

	buf.WriteString(`,"level":"`)
	buf.WriteString(r.Level().String())
	buf.WriteByte('"')

	buf.WriteString(`,"seq":`)
	buf.Write(strconv.AppendUint(buf.AvailableBuffer(), r.Seq(), 10))

	buf.WriteString(`,"logger":"`)
	appendJSONString(buf, r.Name())
	buf.WriteByte('"')

	buf.WriteString(`,"message":"`)
	appendJSONString(buf, r.Message())
	buf.WriteByte('"')

	r.Each(func(field core.Field) bool {
		buf.WriteString(`,"`)
		if reservedJSONKeys[field.Key] {
			buf.WriteString(clashPrefix)
		}
		appendJSONString(buf, field.Key)
		buf.WriteString(`":`)
		appendJSONFieldValue(buf, field)
		return true
	})

	buf.WriteByte('}')
}

// appendJSONString writes a JSON-escaped string (without surrounding quotes) to the buffer
func appendJSONString(buf *bytes.Buffer, s string) {
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= 0x20 && c != '"' && c != '\\' {
			continue
		}
		// Flush unescaped prefix
		if start < i {
			buf.WriteString(s[start:i])
		}
		switch c {
		case '"':
			buf.WriteString(`\"`)
		case '\\':
			buf.WriteString(`\\`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			buf.WriteString(`\u00`)
			buf.WriteByte(hexChars[c>>4])
			buf.WriteByte(hexChars[c&0x0f])
		}
		start = i + 1
	}
	// Flush remaining
	if start < len(s) {
		buf.WriteString(s[start:])
	}
}

var hexChars = [16]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9', 'a', 'b', 'c', 'd', 'e', 'f'}

// appendJSONFieldValue writes a JSON-encoded field value to the buffer
func appendJSONFieldValue(buf *bytes.Buffer, field core.Field) {
	switch field.Type {
	case core.StringType:
		buf.WriteByte('"')
		appendJSONString(buf, field.Str)
		buf.WriteByte('"')
	case core.IntType, core.Int64Type:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), field.Int64, 10))
	case core.Float64Type:
		if math.IsNaN(field.Float64) || math.IsInf(field.Float64, 0) {
			// JSON has no literal for these
			buf.WriteByte('"')
			buf.WriteString(field.StringValue())
			buf.WriteByte('"')
			return
		}
		buf.Write(strconv.AppendFloat(buf.AvailableBuffer(), field.Float64, 'f', -1, 64))
	case core.BoolType:
		buf.Write(strconv.AppendBool(buf.AvailableBuffer(), field.Int64 == 1))
	case core.TimeType:
		buf.WriteByte('"')
		buf.Write(time.Unix(0, field.Int64).UTC().AppendFormat(buf.AvailableBuffer(), time.RFC3339Nano))
		buf.WriteByte('"')
	case core.DurationType:
		buf.Write(strconv.AppendInt(buf.AvailableBuffer(), field.Int64, 10))
	case core.ErrorType:
		buf.WriteByte('"')
		appendJSONString(buf, field.Str)
		buf.WriteByte('"')
	default:
		buf.WriteByte('"')
		appendJSONString(buf, field.StringValue())
		buf.WriteByte('"')
	}
}
