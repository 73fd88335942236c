package out

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"

	hclog "github.com/hashicorp/go-hclog"
	"github.com/hashicorp/go-plugin"
	"go.uber.org/zap"

	renderrpc "drill/internal/modules/diagram/adapter/out/rpc"
	"drill/internal/modules/diagram/domain"
	diagramout "drill/internal/modules/diagram/port/out"
	apperrors "drill/internal/platform/errors"
)

const (
	defaultStartTimeout = 3 * time.Second
	defaultCallTimeout  = 5 * time.Second
)

// PluginRenderer delegates rendering to an external binary speaking the
// renderer gRPC contract. A fresh plugin process serves each call.
type PluginRenderer struct {
	binary string
	width  int
	logger *zap.Logger
}

func NewPluginRenderer(binary string, width int, logger *zap.Logger) diagramout.Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PluginRenderer{binary: binary, width: width, logger: logger}
}

func (r *PluginRenderer) Render(ctx context.Context, request domain.RenderRequest) (domain.Artifact, error) {
	client, closeFn, err := r.connect(defaultStartTimeout)
	if err != nil {
		return domain.Artifact{}, err
	}
	defer closeFn()

	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	response, err := client.Render(callCtx, &renderrpc.RenderRequest{
		ID:         request.ID,
		Pattern:    request.Pattern,
		Definition: request.Definition,
		Width:      int32(r.width),
	})
	if err != nil {
		if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return domain.Artifact{}, fmt.Errorf("%w: plugin timed out on %s", apperrors.ErrRenderFailed, request.ID)
		}
		return domain.Artifact{}, fmt.Errorf("%w: %v", apperrors.ErrRenderFailed, err)
	}
	r.logger.Debug("plugin rendered diagram",
		zap.String("render_id", request.ID),
		zap.String("format", response.Format),
		zap.Bool("has_path", response.Path != ""))
	return domain.Artifact{Text: response.Text, Path: response.Path}, nil
}

// Metadata starts the plugin once and reports what it serves.
func (r *PluginRenderer) Metadata(ctx context.Context) (renderrpc.Metadata, error) {
	client, closeFn, err := r.connect(defaultStartTimeout)
	if err != nil {
		return renderrpc.Metadata{}, err
	}
	defer closeFn()
	callCtx, cancel := callContext(ctx, defaultCallTimeout)
	defer cancel()
	meta, err := client.GetMetadata(callCtx)
	if err != nil {
		return renderrpc.Metadata{}, fmt.Errorf("get metadata: %w", err)
	}
	return *meta, nil
}

func (r *PluginRenderer) connect(startTimeout time.Duration) (renderrpc.RendererClient, func(), error) {
	client := plugin.NewClient(&plugin.ClientConfig{
		HandshakeConfig:  renderrpc.HandshakeConfig,
		AllowedProtocols: []plugin.Protocol{plugin.ProtocolGRPC},
		Plugins:          renderrpc.PluginMap(nil),
		Cmd:              exec.Command(r.binary),
		Managed:          true,
		StartTimeout:     startTimeout,
		Logger:           hclog.New(&hclog.LoggerOptions{Output: io.Discard, Level: hclog.NoLevel}),
	})
	closeFn := func() { client.Kill() }

	rpcClient, err := client.Client()
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("%w: start renderer plugin: %v", apperrors.ErrRenderFailed, err)
	}
	raw, err := rpcClient.Dispense(renderrpc.PluginMapKey)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("%w: dispense renderer plugin: %v", apperrors.ErrRenderFailed, err)
	}
	typed, ok := raw.(renderrpc.RendererClient)
	if !ok {
		closeFn()
		return nil, nil, fmt.Errorf("renderer plugin client type mismatch")
	}
	return typed, closeFn, nil
}

func callContext(parent context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := parent.Deadline(); ok {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, timeout)
}
