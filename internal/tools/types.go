package tools

type Source string

const (
	SourceUnknown    Source = ""
	SourceSettings   Source = "settings"
	SourceCandidate  Source = "candidate"
	SourceRegistry   Source = "registry"
	SourceWorkspace  Source = "workspace"
	SourceDownloaded Source = "downloaded"
)

// Status captures the resolved state for an external tool.
type Status struct {
	Tool      string   `json:"tool"`
	Version   string   `json:"version,omitempty"`
	Minimum   string   `json:"minimum,omitempty"`
	Source    Source   `json:"source"`
	Path      string   `json:"path,omitempty"`
	Checksum  string   `json:"checksum,omitempty"`
	Satisfied bool     `json:"satisfied"`
	Error     string   `json:"error,omitempty"`
	Notes     []string `json:"notes,omitempty"`
}

// ToolDefinition contains metadata required to probe a tool.
type ToolDefinition struct {
	Name           string
	Executable     string
	MinimumVersion string
	VersionArgs    []string
}
