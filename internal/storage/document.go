package storage

import (
	"fmt"
	"strings"
	"time"
)

// TimeLayout is fixed width so that encoded times sort lexicographically
// in chronological order.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

// Fields is the body of a document.
type Fields map[string]any

type Document struct {
	ID     string `json:"id"`
	Fields Fields `json:"fields"`
}

func FormatTime(t time.Time) string {
	return t.UTC().Format(TimeLayout)
}

func ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return time.Parse(time.RFC3339Nano, s)
	}
	return t, nil
}

// Normalize returns a copy of f with time values encoded by FormatTime.
func (f Fields) Normalize() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		switch t := v.(type) {
		case time.Time:
			out[k] = FormatTime(t)
		case *time.Time:
			if t != nil {
				out[k] = FormatTime(*t)
			}
		default:
			out[k] = v
		}
	}
	return out
}

// Merge returns a copy of f with patch applied on top.
func (f Fields) Merge(patch Fields) Fields {
	out := make(Fields, len(f)+len(patch))
	for k, v := range f {
		out[k] = v
	}
	for k, v := range patch.Normalize() {
		out[k] = v
	}
	return out
}

func (d Document) String(field string) string {
	v, ok := d.Fields[field]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func (d Document) Bool(field string) bool {
	switch v := d.Fields[field].(type) {
	case bool:
		return v
	case string:
		return strings.EqualFold(v, "true")
	default:
		return false
	}
}

func (d Document) Time(field string) time.Time {
	s := d.String(field)
	if s == "" {
		return time.Time{}
	}
	t, err := ParseTime(s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// SortKey is the string a document is ordered by for the given field.
func (d Document) SortKey(field string) string {
	return d.String(field)
}

// InPrefixRange reports whether v falls within [prefix, prefix+PrefixUpperBound].
func InPrefixRange(v, prefix string) bool {
	return v >= prefix && v <= prefix+PrefixUpperBound
}
