package tools

import "sort"

const (
	MSBuild = "msbuild"
	NuGet   = "nuget"
)

// MSBuildExecutable is the file looked for inside a candidate directory.
const MSBuildExecutable = "MSBuild.exe"

var toolDefinitions = map[string]ToolDefinition{
	MSBuild: {
		Name:           MSBuild,
		Executable:     MSBuildExecutable,
		MinimumVersion: "15.0",
		VersionArgs:    []string{"-version", "-nologo"},
	},
	NuGet: {
		Name:        NuGet,
		Executable:  "nuget.exe",
		VersionArgs: []string{"help"},
	},
}

// KnownTools returns the list of managed tool names.
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
