// Package flatten turns nested slices into a single ordered slice.
package flatten

import (
	"fmt"
	"reflect"
)

// Flatten returns every non-slice element of items in depth-first order.
//
//	Flatten([]any{[]any{1, 2, []any{3}}, 4}) // [1 2 3 4]
func Flatten(items []any) []any {
	return Append(nil, items...)
}

// Append appends the flattened items to dst and returns the extended slice.
// Slices and arrays of any element type are descended into; strings and
// byte slices are leaves.
func Append(dst []any, items ...any) []any {
	for _, item := range items {
		dst = appendValue(dst, item)
	}
	return dst
}

func appendValue(dst []any, item any) []any {
	switch v := item.(type) {
	case nil, string, []byte:
		return append(dst, item)
	case []any:
		return Append(dst, v...)
	}

	rv := reflect.ValueOf(item)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return append(dst, item)
	}
	for i := 0; i < rv.Len(); i++ {
		dst = appendValue(dst, rv.Index(i).Interface())
	}
	return dst
}

// Strings flattens v and formats every leaf with fmt.Sprint, skipping nils.
// A lone string yields a one-element slice.
func Strings(v any) []string {
	leaves := Append(nil, v)
	out := make([]string, 0, len(leaves))
	for _, leaf := range leaves {
		if leaf == nil {
			continue
		}
		if s, ok := leaf.(string); ok {
			out = append(out, s)
			continue
		}
		out = append(out, fmt.Sprint(leaf))
	}
	return out
}
