//go:build windows

package tools

import (
	"strings"

	"golang.org/x/sys/windows/registry"
)

// Legacy MSBuild installs register their tools path here. Visual Studio 2017+
// installs do not, which is why the candidate list is probed first.
var msbuildRegistryKeys = []string{
	`SOFTWARE\Microsoft\MSBuild\ToolsVersions\Current`,
	`SOFTWARE\Microsoft\MSBuild\ToolsVersions\14.0`,
	`SOFTWARE\Microsoft\MSBuild\ToolsVersions\4.0`,
}

func registryMSBuildDir() (string, bool) {
	for _, path := range msbuildRegistryKeys {
		key, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE)
		if err != nil {
			continue
		}
		dir, _, err := key.GetStringValue("MSBuildToolsPath")
		key.Close()
		if err != nil || strings.TrimSpace(dir) == "" {
			continue
		}
		return strings.TrimRight(dir, `\`), true
	}
	return "", false
}
