package utils_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bqnvd/pkg/utils"
)

func TestCtxRequestID(t *testing.T) {
	ctx := context.Background()

	id1, ctx := utils.CtxRequestID(ctx)
	if id1.Empty() {
		t.Error("request ID must be generated when absent")
	}

	// Same context keeps the same ID
	id2, _ := utils.CtxRequestID(ctx)
	gt.Equal(t, id1, id2)
}

func TestCtxSyncID(t *testing.T) {
	ctx := context.Background()

	id1, ctx := utils.CtxSyncID(ctx)
	if id1 == "" {
		t.Error("sync ID must be generated when absent")
	}

	id2, _ := utils.CtxSyncID(ctx)
	gt.Equal(t, id1, id2)
}

func TestCtxLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil)).With("sync_id", "blue")

	ctx := utils.CtxWithLogger(context.Background(), logger)
	utils.CtxLogger(ctx).Info("orange five")

	if !strings.Contains(buf.String(), "orange five") {
		t.Errorf("attached logger was not used: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "sync_id=blue") {
		t.Errorf("logger attributes were lost: %s", buf.String())
	}
}
