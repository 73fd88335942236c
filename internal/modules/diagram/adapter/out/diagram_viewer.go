package out

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"go.uber.org/zap"

	diagramout "drill/internal/modules/diagram/port/out"
	"drill/internal/platform/logging"
)

// DiagramViewer hands a rendered diagram file to a GUI program. The drill
// keeps the terminal, so the viewer is started detached and never waited on
// by the caller.
type DiagramViewer struct {
	command    []string
	resolveErr error
	logger     *zap.Logger
}

// NewDiagramViewer resolves the viewer once. An empty configured command
// falls back to $BROWSER and then to the platform's file opener.
func NewDiagramViewer(configured string, logger *zap.Logger) diagramout.ArtifactOpener {
	command, err := ViewerCommand(configured, os.Getenv, runtime.GOOS)
	return &DiagramViewer{command: command, resolveErr: err, logger: logging.OrNop(logger)}
}

// ViewerCommand picks the argv prefix used to open a diagram file.
func ViewerCommand(configured string, getenv func(string) string, goos string) ([]string, error) {
	if fields := strings.Fields(configured); len(fields) > 0 {
		return fields, nil
	}
	// $BROWSER may hold a colon separated list; the first entry wins.
	if browser, _, _ := strings.Cut(getenv("BROWSER"), ":"); strings.TrimSpace(browser) != "" {
		return strings.Fields(browser), nil
	}
	switch goos {
	case "darwin":
		return []string{"open"}, nil
	case "windows":
		return []string{"rundll32", "url.dll,FileProtocolHandler"}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return []string{"xdg-open"}, nil
	default:
		return nil, fmt.Errorf("no diagram viewer for %s; set render.viewer", goos)
	}
}

func (v *DiagramViewer) Open(ctx context.Context, path string) error {
	if v.resolveErr != nil {
		return v.resolveErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	args := append(append([]string(nil), v.command[1:]...), path)
	cmd := exec.Command(v.command[0], args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("open diagram with %s: %w", v.command[0], err)
	}
	v.logger.Debug("diagram viewer started", zap.String("viewer", v.command[0]), zap.String("path", path))
	go func() {
		if err := cmd.Wait(); err != nil {
			v.logger.Warn("diagram viewer exited", zap.String("viewer", v.command[0]), zap.Error(err))
		}
	}()
	return nil
}
