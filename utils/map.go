package utils

import (
	"fmt"
	"strings"

	"github.com/elliotchance/orderedmap/v2"
)

// KeyValsToString formats slog-style keyvals into a single bracketed string.
// Example: KeyValsToString("foo", 1, "bar", true) => "[foo=1 bar=true]".
// If an odd number of values is provided, the last value is ignored.
func KeyValsToString(kv ...any) string {
	var b strings.Builder
	b.WriteByte('[')
	for i := range len(kv) / 2 {
		if i > 0 {
			b.WriteByte(' ')
		}
		// Non-string keys are coerced with fmt.
		fmt.Fprintf(&b, "%v=%v", kv[i*2], kv[i*2+1])
	}
	b.WriteByte(']')
	return b.String()
}

// OrderedMapToString formats an ordered map in insertion order, like KeyValsToString.
func OrderedMapToString[K comparable, V any](m *orderedmap.OrderedMap[K, V]) string {
	kv := make([]any, 0, m.Len()*2)
	for el := m.Front(); el != nil; el = el.Next() {
		kv = append(kv, el.Key, el.Value)
	}
	return KeyValsToString(kv...)
}
