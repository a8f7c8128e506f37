package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/condadeps/pkg/observability"
)

// pipelineLogHooks writes pipeline events to the debug log.
type pipelineLogHooks struct {
	logger *log.Logger
}

func (h *pipelineLogHooks) OnDiscover(_ context.Context, root, path string, err error) {
	if err != nil {
		h.logger.Debug("discovery failed", "root", root, "err", err)
		return
	}
	h.logger.Debug("discovered environment file", "root", root, "path", path)
}

func (h *pipelineLogHooks) OnResolveComplete(_ context.Context, path string, entries, duplicates int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("resolve failed", "path", path, "duration", d, "err", err)
		return
	}
	h.logger.Debug("resolve complete", "path", path, "entries", entries, "duplicates", duplicates, "duration", d)
}

func (h *pipelineLogHooks) OnSubmitComplete(_ context.Context, repository string, id int64, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("submit failed", "repository", repository, "duration", d, "err", err)
		return
	}
	h.logger.Debug("submit complete", "repository", repository, "id", id, "duration", d)
}

// httpLogHooks writes HTTP events to the debug log.
type httpLogHooks struct {
	logger *log.Logger
}

func (h *httpLogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *httpLogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h *httpLogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Debug("http error", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ observability.PipelineHooks = (*pipelineLogHooks)(nil)
	_ observability.HTTPHooks     = (*httpLogHooks)(nil)
)
