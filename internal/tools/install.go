package tools

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
)

// InstallOptions configures install behaviour.
type InstallOptions struct {
	Force bool
}

// EnsureNuGet makes sure nuget.exe exists at dest, downloading it from
// downloadURL when absent. An existing file is trusted as-is; no checksum is
// verified and nothing is re-downloaded unless opts.Force is set.
func EnsureNuGet(ctx context.Context, dest, downloadURL string, opts InstallOptions) (Status, error) {
	status := Status{Tool: NuGet, Path: dest}

	if !opts.Force {
		if info, err := os.Stat(dest); err == nil && info.Mode().IsRegular() {
			status.Source = SourceWorkspace
			status.Satisfied = true
			return status, nil
		}
	}

	if err := downloadArtifact(ctx, dest, downloadURL); err != nil {
		status.Error = err.Error()
		status.Notes = installHints(NuGet)
		return status, err
	}

	status.Source = SourceDownloaded
	status.Satisfied = true
	status.Notes = append(status.Notes, fmt.Sprintf("downloaded %s", downloadURL))
	if checksum, err := computeChecksum(dest); err == nil {
		status.Checksum = checksum
	}
	return status, nil
}

func downloadArtifact(ctx context.Context, dest, downloadURL string) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("prepare download destination: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, downloadURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "slnbuild/1.0")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("download %s: %w", downloadURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("download %s: unexpected status %s", downloadURL, resp.Status)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(dest), "download-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		tmpFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o755); err != nil {
		return fmt.Errorf("chmod download: %w", err)
	}

	if err := os.Rename(tmpPath, dest); err != nil {
		return fmt.Errorf("finalize download: %w", err)
	}
	return nil
}

func computeChecksum(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open for checksum: %w", err)
	}
	defer file.Close()

	h := sha256.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", fmt.Errorf("hash file: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
