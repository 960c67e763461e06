// internal/logging/reporter.go
package logging

import (
	"errors"

	"go.uber.org/zap"

	"github.com/tamzrod/pdp-monitor/internal/pdp"
)

// Reporter logs every panel error as a warning.
type Reporter struct {
	log *zap.Logger
}

// NewReporter returns a pdp.Reporter writing to log. A nil logger discards.
func NewReporter(log *zap.Logger) *Reporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reporter{log: log}
}

func (r *Reporter) Report(err *pdp.Error) {
	fields := []zap.Field{
		zap.String("op", err.Op),
		zap.String("kind", kindName(err)),
	}
	if err.Status != pdp.StatusOK {
		fields = append(fields, zap.Int32("status", int32(err.Status)))
	}
	if errors.Is(err, pdp.ErrRange) {
		fields = append(fields,
			zap.Int("min", err.Min),
			zap.Int("max", err.Max),
			zap.Int("requested", err.Value),
		)
	}
	if err.Msg != "" {
		fields = append(fields, zap.String("context", err.Msg))
	}

	r.log.Warn("pdp error", fields...)
}

func kindName(err *pdp.Error) string {
	switch {
	case errors.Is(err, pdp.ErrRange):
		return "range"
	case errors.Is(err, pdp.ErrTimeout):
		return "timeout"
	default:
		return "unknown"
	}
}

var _ pdp.Reporter = (*Reporter)(nil)
