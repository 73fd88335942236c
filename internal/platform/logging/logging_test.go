package logging_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"drill/internal/platform/logging"
)

func TestNewWritesToFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "logs", "drill.log")
	logger, err := logging.New("debug", path)
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	logger.Info("ingest finished")
	_ = logger.Sync()

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(b), "ingest finished") {
		t.Fatalf("log file missing entry: %s", b)
	}
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	t.Parallel()
	if _, err := logging.New("loud", ""); err == nil {
		t.Fatalf("unknown level should fail")
	}
}

func TestOrNop(t *testing.T) {
	t.Parallel()
	if logging.OrNop(nil) == nil {
		t.Fatalf("expected a usable logger")
	}
}
