package model

import "fmt"

// ValueKind is the closed set of typed columns an attribute value can occupy.
// Exactly one typed column is meaningful per attribute row.
type ValueKind int

const (
	KindBool ValueKind = iota
	KindInt
	KindFloat
	KindString
	KindTagList
)

// String returns the wire/config name for the kind.
func (k ValueKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTagList:
		return "tag_list"
	default:
		return fmt.Sprintf("ValueKind(%d)", int(k))
	}
}

// ParseValueKind maps a config name back to a ValueKind.
func ParseValueKind(s string) (ValueKind, error) {
	switch s {
	case "bool":
		return KindBool, nil
	case "int":
		return KindInt, nil
	case "float":
		return KindFloat, nil
	case "string", "str":
		return KindString, nil
	case "tag_list", "list":
		return KindTagList, nil
	default:
		return 0, fmt.Errorf("unknown value kind %q", s)
	}
}
