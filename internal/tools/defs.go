package tools

import "sort"

var toolDefinitions = map[string]ToolDefinition{
	"java": {
		Name:           "java",
		MinimumVersion: "17",
		Binary:         BinarySpec{Base: "java", VersionArgs: []string{"-version"}},
		parse:          parseJavaVersion,
	},
	"gradle": {
		Name:   "gradle",
		Binary: BinarySpec{Base: "gradle", Script: true, VersionArgs: []string{"--version"}},
		parse:  parseGradleVersion,
	},
	"sdkmanager": {
		Name:   "sdkmanager",
		Binary: BinarySpec{Base: "sdkmanager", Script: true, VersionArgs: []string{"--version"}},
		parse:  parseSDKManagerVersion,
	},
}

// KnownTools returns the list of detected tool names.
func KnownTools() []string {
	names := make([]string, 0, len(toolDefinitions))
	for name := range toolDefinitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definition returns the tool definition for the provided name.
func Definition(name string) (ToolDefinition, bool) {
	def, ok := toolDefinitions[name]
	return def, ok
}
