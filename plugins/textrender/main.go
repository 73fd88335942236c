// Command textrender is the reference diagram renderer plugin. It serves the
// built-in terminal layout over the renderer gRPC contract. When
// DRILL_RENDER_OUT_DIR is set, each diagram is also written there as a file.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-plugin"

	renderrpc "drill/internal/modules/diagram/adapter/out/rpc"
	"drill/internal/platform/mermaid"
	"drill/internal/platform/slug"
)

type server struct {
	outDir string
}

func (s *server) GetMetadata(_ context.Context, _ *renderrpc.Empty) (*renderrpc.Metadata, error) {
	return &renderrpc.Metadata{Name: "textrender", Version: "1.0.0", Formats: []string{"text"}}, nil
}

func (s *server) Render(_ context.Context, in *renderrpc.RenderRequest) (*renderrpc.RenderResponse, error) {
	d, err := mermaid.Parse(in.Definition)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", in.ID, err)
	}
	text := mermaid.Render(d, int(in.Width), mermaid.DefaultStyle())
	out := &renderrpc.RenderResponse{Text: text, Format: "text"}
	if s.outDir != "" {
		path := filepath.Join(s.outDir, slug.Make(in.ID)+".txt")
		if err := os.WriteFile(path, []byte(text+"\n"), 0o644); err != nil {
			return nil, fmt.Errorf("write artifact: %w", err)
		}
		out.Path = path
	}
	return out, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: renderrpc.HandshakeConfig,
		Plugins:         renderrpc.PluginMap(&server{outDir: os.Getenv("DRILL_RENDER_OUT_DIR")}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
