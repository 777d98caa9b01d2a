package logx

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"slnbuild/internal/paths"
)

// New creates a logger that writes to a timestamped file inside the
// workspace's logs directory. The returned closer should be closed when
// logging is no longer needed. The run identifier prefixes every line so
// interleaved runs stay distinguishable.
func New(p paths.WorkspacePaths, runID string) (*log.Logger, io.Closer, error) {
	if err := p.EnsureLogsDir(); err != nil {
		return nil, nil, fmt.Errorf("ensure logs directory: %w", err)
	}

	filename := time.Now().Format("20060102-150405") + ".log"
	filePath := filepath.Join(p.LogsDir, filename)
	file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}

	prefix := ""
	if runID != "" {
		prefix = "[" + runID + "] "
	}
	logger := log.New(file, prefix, log.LstdFlags|log.Lmicroseconds)
	return logger, file, nil
}

