package formatter

import (
	"bytes"
	"sync"

	"github.com/philipp01105/asynclog/core"
)

// Formatter renders a record to a single line of text, without the
// trailing newline. Implementations are stateless after construction and
// safe for concurrent use.
type Formatter interface {
	// Format renders the record
	Format(r *core.Record) string
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding the
// intermediate string allocation.
type BufferFormatter interface {
	// FormatTo appends the rendered record to buf.
	FormatTo(buf *bytes.Buffer, r *core.Record)
}

// TimestampLayout renders UTC timestamps as ISO-8601 with microseconds.
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}

// formatWith renders through the pool for formatters that only know how to
// append into a buffer.
func formatWith(f BufferFormatter, r *core.Record) string {
	buf := getBuffer()
	f.FormatTo(buf, r)
	s := buf.String()
	putBuffer(buf)
	return s
}

// appendMeta writes metadata as space separated key=value pairs.
func appendMeta(buf *bytes.Buffer, r *core.Record) {
	first := true
	r.Each(func(f core.Field) bool {
		if !first {
			buf.WriteByte(' ')
		}
		first = false
		buf.WriteString(f.Key)
		buf.WriteByte('=')
		buf.WriteString(f.StringValue())
		return true
	})
}
