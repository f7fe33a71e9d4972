// Package formatter defines how log records are rendered into text lines.
//
// TemplateFormatter substitutes the named placeholders {asctime}, {level},
// {name}, {msg} and {meta} into a template that is parsed once at
// construction: an unknown placeholder is a configuration error reported by
// NewTemplateFormatter, never at write time. JSONFormatter renders one JSON
// object per record for machine consumption.
//
// Both formatters implement BufferFormatter. Handlers check for it at
// construction time and format straight into their own buffer, so the hot
// path allocates nothing beyond what the sink itself needs. The Format
// method uses a pooled bytes.Buffer internally; buffers larger than 64 KiB
// are not returned to the pool so a single large log line cannot
// permanently inflate memory usage.
package formatter
