package tools

type Source string

const (
	SourceUnknown   Source = ""
	SourceWorkspace Source = "workspace"
	SourceSystem    Source = "system"
)

// Status captures the resolved state for a toolchain executable.
type Status struct {
	Tool      string   `json:"tool"`
	Version   string   `json:"version,omitempty"`
	Minimum   string   `json:"minimum,omitempty"`
	Source    Source   `json:"source"`
	Path      string   `json:"path,omitempty"`
	Satisfied bool     `json:"satisfied"`
	Error     string   `json:"error,omitempty"`
	Notes     []string `json:"notes,omitempty"`
}

// BinarySpec describes the executable probed for a tool. Script binaries
// are launched through the platform shell.
type BinarySpec struct {
	Base        string
	Script      bool
	VersionArgs []string
}

// ToolDefinition contains metadata required to detect a tool.
type ToolDefinition struct {
	Name           string
	MinimumVersion string
	Binary         BinarySpec
	parse          func(output string) string
}
