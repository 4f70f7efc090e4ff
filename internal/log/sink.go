package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// DebugFileEnv names the environment variable that enables the JSON debug sink.
// A directory value gets a uuid-named file per run; anything else is used as the file path.
const DebugFileEnv = "DEVFLOW_DEBUG_FILE"

// OpenSink opens the JSON debug sink configured through DEVFLOW_DEBUG_FILE.
// Returns a nil logger and a no-op closer when the variable is unset.
func OpenSink() (*slog.Logger, io.Closer, error) {
	target := os.Getenv(DebugFileEnv)
	if target == "" {
		return nil, io.NopCloser(nil), nil
	}

	if info, err := os.Stat(target); err == nil && info.IsDir() {
		target = filepath.Join(target, uuid.New().String()+".log")
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create debug log directory: %w", err)
	}

	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open debug log: %w", err)
	}

	handler := slog.NewJSONHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(handler), f, nil
}
