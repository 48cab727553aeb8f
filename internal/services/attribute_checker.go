package services

import "strings"

// Attribute is one (name, value) pair in a caller-defined priority order.
// The field set is fixed at compile time, so no reflection is involved.
type Attribute struct {
	Name  string
	Value string
}

// FirstAttributePresent returns the uppercased name of the first attribute
// carrying a non-blank value, or false when every value is blank.
func FirstAttributePresent(attrs ...Attribute) (string, bool) {
	for _, a := range attrs {
		if strings.TrimSpace(a.Value) != "" {
			return strings.ToUpper(a.Name), true
		}
	}
	return "", false
}
