package tracing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// InjectScanID tags every log line written through the returned context
// with a fresh scan id, which is also returned so it can be stored with
// the scan result.
func InjectScanID(ctx context.Context) (context.Context, string) {
	id := uuid.New().String()
	logger := log.With().Str("scanId", id).Logger()
	return logger.WithContext(ctx), id
}
