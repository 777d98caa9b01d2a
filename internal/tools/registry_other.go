//go:build !windows

package tools

func registryMSBuildDir() (string, bool) {
	return "", false
}
