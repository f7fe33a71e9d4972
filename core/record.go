package core

import (
	"sync/atomic"
	"time"
)

// sequence is shared by every Record built in this process.
var sequence atomic.Uint64

// Record is an immutable log event. It is safe to share between the
// producer that built it and the consumer that delivers it.
type Record struct {
	time   time.Time
	seq    uint64
	name   string
	level  Level
	msg    string
	fields []Field
}

// NewRecord builds a Record stamped with the current UTC time and the next
// sequence number.
func NewRecord(name string, level Level, msg string, fields ...Field) *Record {
	return NewRecordAt(time.Now(), name, level, msg, fields...)
}

// NewRecordAt is NewRecord with an explicit timestamp, used when the event
// time is known upstream (for example a slog.Record).
func NewRecordAt(t time.Time, name string, level Level, msg string, fields ...Field) *Record {
	return &Record{
		time:   t.UTC(),
		seq:    sequence.Add(1),
		name:   name,
		level:  level,
		msg:    msg,
		fields: uniqueFields(fields),
	}
}

// uniqueFields copies fields, keeping the first position of every key and
// the last value assigned to it.
func uniqueFields(fields []Field) []Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]Field, 0, len(fields))
	var index map[string]int
	if len(fields) > 8 {
		index = make(map[string]int, len(fields))
	}
	for _, f := range fields {
		pos := -1
		if index != nil {
			if i, ok := index[f.Key]; ok {
				pos = i
			}
		} else {
			for i := range out {
				if out[i].Key == f.Key {
					pos = i
					break
				}
			}
		}
		if pos >= 0 {
			out[pos] = f
			continue
		}
		if index != nil {
			index[f.Key] = len(out)
		}
		out = append(out, f)
	}
	return out
}

// Time returns the UTC construction time.
func (r *Record) Time() time.Time { return r.time }

// Seq returns the process-wide sequence number.
func (r *Record) Seq() uint64 { return r.seq }

// Name returns the name of the logger that produced the record.
func (r *Record) Name() string { return r.name }

// Level returns the severity.
func (r *Record) Level() Level { return r.level }

// Message returns the message text.
func (r *Record) Message() string { return r.msg }

// NumFields returns the number of metadata entries.
func (r *Record) NumFields() int { return len(r.fields) }

// Fields returns a copy of the metadata in insertion order.
func (r *Record) Fields() []Field {
	if len(r.fields) == 0 {
		return nil
	}
	out := make([]Field, len(r.fields))
	copy(out, r.fields)
	return out
}

// Each calls fn for every metadata entry in insertion order until fn
// returns false.
func (r *Record) Each(fn func(Field) bool) {
	for _, f := range r.fields {
		if !fn(f) {
			return
		}
	}
}

// Lookup returns the metadata entry stored under key.
func (r *Record) Lookup(key string) (Field, bool) {
	for _, f := range r.fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}
