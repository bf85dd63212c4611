package scan

import (
	"fmt"
	"path"
	"strings"
)

// matchesPattern returns true if the factory matches the selector pattern.
// Pattern can be:
//   - Wildcard: "*" matches all factories
//   - Exact type: "XSSSecurityScan"
//   - Glob over the type: "*Injection*", "Xml*"
//
// Matching is case-insensitive.
func matchesPattern(f Factory, pattern string) (bool, error) {
	if pattern == "*" {
		return true, nil
	}

	typ := strings.ToLower(f.Type())
	pattern = strings.ToLower(pattern)

	if pattern == typ {
		return true, nil
	}

	matched, err := path.Match(pattern, typ)
	if err != nil {
		return false, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	return matched, nil
}

// ValidateSelector validates a factory selector pattern.
func ValidateSelector(selector string) error {
	if selector == "" {
		return fmt.Errorf("scan selector cannot be empty")
	}

	if selector == "*" {
		return nil
	}

	if _, err := path.Match(selector, "test"); err != nil {
		return fmt.Errorf("invalid scan selector pattern %q: %w", selector, err)
	}

	return nil
}
