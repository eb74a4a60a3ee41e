package main

import (
	"fmt"
	"strings"

	"github.com/gnargs/gnargs/internal/gnvalue"
)

// renderValue formats a Value the way the DSL would print it back:
// booleans and integers bare, strings quoted, lists bracketed.
func renderValue(v gnvalue.Value) string {
	switch v.Kind() {
	case gnvalue.KindBool:
		b, _ := v.AsBool()
		return fmt.Sprintf("%t", b)
	case gnvalue.KindInt:
		n, _ := v.AsInt()
		return fmt.Sprintf("%d", n)
	case gnvalue.KindString:
		s, _ := v.AsString()
		return fmt.Sprintf("%q", s)
	case gnvalue.KindList:
		items, _ := v.AsList()
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = renderValue(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case gnvalue.KindScope:
		return "{...}"
	default:
		return "null"
	}
}
