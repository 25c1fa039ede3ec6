package cmd

import (
	"strconv"
	"strings"
)

// ParseVars converts raw name=value flag bindings into typed variable
// values suitable for injection into an evaluation environment.
func ParseVars(raw map[string]string) map[string]any {
	if len(raw) == 0 {
		return nil
	}

	vars := make(map[string]any, len(raw))
	for name, value := range raw {
		vars[name] = ParseLiteral(value)
	}

	return vars
}

// ParseLiteral coerces a raw string into its most specific literal value.
//
// Values parse in order as the constants None, True, and False, then as
// integer (including 0b, 0o, and 0x prefixes), then as float. A value
// wrapped in matching single or double quotes is unwrapped and always
// treated as a string. Anything else is returned as the raw string.
func ParseLiteral(value string) any {
	switch value {
	case "None":
		return nil
	case "True":
		return true
	case "False":
		return false
	}

	if quoted(value) {
		return value[1 : len(value)-1]
	}

	if n, err := strconv.ParseInt(value, 0, 64); err == nil {
		return n
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}

	return value
}

func quoted(value string) bool {
	if len(value) < 2 {
		return false
	}

	return (strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`)) ||
		(strings.HasPrefix(value, `'`) && strings.HasSuffix(value, `'`))
}
