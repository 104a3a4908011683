package tracing

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TraceIDHeader carries a caller supplied trace id on api requests.
const TraceIDHeader = "X-Request-ID"

type traceID struct{}

func InjectTraceID(ctx context.Context) context.Context {
	return InjectTraceIDWithValue(ctx, uuid.New().String())
}

// InjectTraceIDWithValue stores id in ctx and attaches a logger tagged with it,
// so log.Ctx(ctx) carries the trace id from then on.
func InjectTraceIDWithValue(ctx context.Context, id string) context.Context {
	ctx = context.WithValue(ctx, traceID{}, id)
	logger := log.With().Str("traceId", id).Logger()
	return logger.WithContext(ctx)
}

func TraceIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(traceID{}).(string)
	return id
}
