// Package reporting defines the observability reporter used by the ingestion
// pipeline. The reporter is injected through the service context so tests can
// substitute a capturing implementation without touching shared state.
package reporting

import (
	"context"
	"time"

	"github.com/zeromicro/go-zero/core/logx"
)

// Reporter records the lifecycle of provider operations: request issued,
// response received, error with cause. Implementations must be safe for
// concurrent use.
type Reporter interface {
	OnRequest(ctx context.Context, endpoint string, params map[string]any)
	OnResponse(ctx context.Context, endpoint string, status int, latency time.Duration)
	OnError(ctx context.Context, message string, cause error, details map[string]any)
}

type logxReporter struct{}

// NewLogxReporter returns a Reporter that emits structured logx events.
func NewLogxReporter() Reporter {
	return logxReporter{}
}

func (logxReporter) OnRequest(ctx context.Context, endpoint string, params map[string]any) {
	logx.WithContext(ctx).Infow("provider request issued",
		logx.Field("endpoint", endpoint),
		logx.Field("params", params),
	)
}

func (logxReporter) OnResponse(ctx context.Context, endpoint string, status int, latency time.Duration) {
	logx.WithContext(ctx).Infow("provider response received",
		logx.Field("endpoint", endpoint),
		logx.Field("status", status),
		logx.Field("latency", latency.String()),
	)
}

func (logxReporter) OnError(ctx context.Context, message string, cause error, details map[string]any) {
	logx.WithContext(ctx).Errorw(message,
		logx.Field("cause", errString(cause)),
		logx.Field("details", details),
		logx.Field("timestamp", time.Now().UTC().Format(time.RFC3339)),
	)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
