package hdfsfile

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseMode validates an octal permission string and returns it in
// canonical four-digit form ("755" -> "0755"). A "0o" prefix is accepted.
func ParseMode(s string) (string, error) {
	m := strings.TrimPrefix(strings.TrimSpace(s), "0o")
	if len(m) < 3 || len(m) > 4 {
		return "", fmt.Errorf("mode %q must have 3 or 4 octal digits", s)
	}
	for _, c := range m {
		if c < '0' || c > '7' {
			return "", fmt.Errorf("mode %q is not an octal permission", s)
		}
	}
	if len(m) == 3 {
		m = "0" + m
	}
	return m, nil
}

// ModeValue is a mode as written in a parameter file. It keeps the literal
// text so that an unquoted 0755 is not read as the decimal 493.
type ModeValue string

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *ModeValue) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: mode must be a scalar", node.Line)
	}
	*m = ModeValue(node.Value)
	return nil
}
