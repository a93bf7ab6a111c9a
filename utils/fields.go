package utils

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// Fields is an ordered set of key/value pairs attached to a log line.
type Fields = orderedmap.OrderedMap[string, any]

// NewFields builds Fields from alternating keys and values. Non-string keys are formatted with %v and
// an odd trailing value is ignored.
func NewFields(kv ...any) *Fields {
	f := orderedmap.NewOrderedMap[string, any]()
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprintf("%v", kv[i])
		}
		f.Set(key, kv[i+1])
	}
	return f
}

// FormatFields formats the fields in insertion order into a single bracketed string.
// Example: "[foo=1 bar=true]".
func FormatFields(f *Fields) string {
	var b strings.Builder
	b.WriteByte('[')
	for el := f.Front(); el != nil; el = el.Next() {
		if el != f.Front() {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%s=%v", el.Key, el.Value)
	}
	b.WriteByte(']')
	return b.String()
}

// KeyValsToString formats alternating keys and values, see NewFields.
func KeyValsToString(kv ...any) string {
	return FormatFields(NewFields(kv...))
}
