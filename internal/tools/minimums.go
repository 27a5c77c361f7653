package tools

import (
	"fmt"
	"strings"
)

// resolveMinimumVersion applies a configured override. An override below the
// built-in floor is ignored and noted.
func resolveMinimumVersion(def ToolDefinition, overrides map[string]string) (string, []string) {
	minimum := strings.TrimSpace(def.MinimumVersion)

	override := ""
	for name, value := range overrides {
		if strings.EqualFold(name, def.Name) {
			override = strings.TrimSpace(value)
			break
		}
	}
	if override == "" {
		return minimum, nil
	}
	if minimum == "" {
		return override, nil
	}

	ok, err := meetsMinimum(override, minimum)
	if err != nil {
		return minimum, []string{fmt.Sprintf("config minimum ignored: %v", err)}
	}
	if !ok {
		return minimum, []string{fmt.Sprintf("config minimum %s ignored; default minimum %s is higher", override, minimum)}
	}
	if override != minimum {
		return override, []string{fmt.Sprintf("minimum overridden by config (%s)", override)}
	}
	return minimum, nil
}
