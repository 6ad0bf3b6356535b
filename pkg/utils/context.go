package utils

import (
	"context"
	"log/slog"

	"github.com/secmon-lab/bqnvd/pkg/domain/types"
)

type ctxRequestIDKey struct{}

// CtxRequestID returns request ID from context. If request ID is not set, return new request ID and context with it
func CtxRequestID(ctx context.Context) (types.RequestID, context.Context) {
	if id, ok := ctx.Value(ctxRequestIDKey{}).(types.RequestID); ok {
		return id, ctx
	}

	newID := types.NewRequestID()
	return newID, context.WithValue(ctx, ctxRequestIDKey{}, newID)
}

type ctxSyncIDKey struct{}

// CtxSyncID returns sync ID from context. If sync ID is not set, return new sync ID and context with it
func CtxSyncID(ctx context.Context) (types.SyncID, context.Context) {
	if id, ok := ctx.Value(ctxSyncIDKey{}).(types.SyncID); ok {
		return id, ctx
	}

	newID := types.NewSyncID()
	return newID, context.WithValue(ctx, ctxSyncIDKey{}, newID)
}

type ctxLoggerKey struct{}

// CtxWithLogger returns a new context with logger
func CtxWithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// CtxLogger returns logger from context. If logger is not set, return default logger
func CtxLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return l
	}
	return logger
}
