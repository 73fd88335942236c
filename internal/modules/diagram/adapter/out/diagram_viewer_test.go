package out_test

import (
	"context"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/google/go-cmp/cmp"

	diagramout "drill/internal/modules/diagram/adapter/out"
)

func TestViewerCommandResolution(t *testing.T) {
	t.Parallel()
	env := func(vars map[string]string) func(string) string {
		return func(key string) string { return vars[key] }
	}
	cases := []struct {
		name       string
		configured string
		env        map[string]string
		goos       string
		want       []string
	}{
		{name: "configured wins", configured: "code --wait", env: map[string]string{"BROWSER": "firefox"}, goos: "linux", want: []string{"code", "--wait"}},
		{name: "browser fallback", configured: "  ", env: map[string]string{"BROWSER": "w3m:lynx"}, goos: "linux", want: []string{"w3m"}},
		{name: "linux default", goos: "linux", want: []string{"xdg-open"}},
		{name: "darwin default", goos: "darwin", want: []string{"open"}},
		{name: "windows default", goos: "windows", want: []string{"rundll32", "url.dll,FileProtocolHandler"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := diagramout.ViewerCommand(tc.configured, env(tc.env), tc.goos)
			if err != nil {
				t.Fatalf("resolve: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("unexpected command (-want +got):\n%s", diff)
			}
		})
	}

	if _, err := diagramout.ViewerCommand("", env(nil), "plan9"); err == nil {
		t.Fatalf("unknown platform without a configured viewer should fail")
	}
}

func TestDiagramViewerStartsConfiguredCommand(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX true binary")
	}
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true is not on PATH")
	}
	path := filepath.Join(t.TempDir(), "observer.txt")

	if err := diagramout.NewDiagramViewer("true", nil).Open(context.Background(), path); err != nil {
		t.Fatalf("open with configured viewer: %v", err)
	}
	if err := diagramout.NewDiagramViewer("drill-no-such-viewer", nil).Open(context.Background(), path); err == nil {
		t.Fatalf("a missing viewer binary should fail to start")
	}
}
