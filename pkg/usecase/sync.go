package usecase

import (
	"context"
	"strconv"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/hashicorp/go-multierror"
	"github.com/m-mizutani/bqs"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bqnvd/pkg/domain/model"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
	"github.com/secmon-lab/bqnvd/pkg/utils"
)

// FeedRecent is the rolling feed of recently published CVEs
const FeedRecent types.FeedName = "recent"

// Sync brings the configured dataset up to date with NVD. A dataset
// below the bootstrap threshold is treated as greenfield and gets the
// full yearly feeds; otherwise only the recent feed is applied.
func (x *UseCase) Sync(ctx context.Context) error {
	count, err := x.CountCVEs(ctx, x.dataset)
	if err != nil {
		return err
	}

	if count < x.bootstrapThreshold {
		utils.CtxLogger(ctx).Info("bootstrapping", "dataset", x.dataset, "count", count)
		return x.Bootstrap(ctx)
	}

	utils.CtxLogger(ctx).Info("doing incremental update", "dataset", x.dataset, "count", count)
	return x.Incremental(ctx)
}

// Bootstrap processes the entirety of NVD, one yearly feed at a time.
// A failing feed does not stop the remaining ones; failures are
// collected and reported together.
func (x *UseCase) Bootstrap(ctx context.Context) error {
	var errs *multierror.Error

	currentYear := time.Now().Year()
	for year := x.startYear; year <= currentYear; year++ {
		name := types.FeedName(strconv.Itoa(year))
		if err := x.SyncFeed(ctx, name); err != nil {
			errs = multierror.Append(errs, goerr.Wrap(err, "failed to sync feed", goerr.V("feed", name)))
		}
	}

	return errs.ErrorOrNil()
}

// Incremental applies the recent feed only.
func (x *UseCase) Incremental(ctx context.Context) error {
	return x.SyncFeed(ctx, FeedRecent)
}

// SyncFeed downloads one feed, extracts it, transforms the delta into
// newline delimited JSON, uploads it to the working bucket and bulk
// loads it into the nvd table. When a metadata table is configured, a
// sync record is appended regardless of the outcome.
func (x *UseCase) SyncFeed(ctx context.Context, name types.FeedName) (e error) {
	syncID, ctx := utils.CtxSyncID(ctx)
	ctx = utils.CtxWithLogger(ctx, utils.CtxLogger(ctx).With("sync_id", syncID.String()))

	syncLog := &model.SyncLog{
		ID:        syncID,
		Feed:      name,
		StartedAt: time.Now(),
	}
	if x.metadata != nil {
		defer func() {
			syncLog.FinishedAt = time.Now()
			syncLog.Success = e == nil
			if e != nil {
				syncLog.Error = e.Error()
			}
			if err := x.recordSyncLog(ctx, syncLog); err != nil {
				utils.HandleError(ctx, "failed to record sync log", err)
			}
		}()
	}

	utils.CtxLogger(ctx).Info("syncing feed", "feed", name, "dataset", x.dataset)

	path, err := x.clients.Feed().Download(ctx, name, x.localDir)
	if err != nil {
		return err
	}

	feed, err := x.Extract(path)
	if err != nil {
		return err
	}
	syncLog.Total = len(feed.CVEItems)

	ndPath, loaded, err := x.Transform(ctx, x.dataset, feed, name)
	if err != nil {
		return err
	}
	if ndPath == "" {
		utils.CtxLogger(ctx).Info("no updates to load", "feed", name)
		return nil
	}
	syncLog.Loaded = loaded

	uri, err := x.Upload(ctx, ndPath)
	if err != nil {
		return err
	}

	return x.BulkLoad(ctx, x.dataset, uri)
}

func (x *UseCase) recordSyncLog(ctx context.Context, syncLog *model.SyncLog) error {
	schema, err := bqs.Infer(syncLog)
	if err != nil {
		return goerr.Wrap(err, "failed to infer sync log schema")
	}

	md := &bigquery.TableMetadata{Schema: schema}
	if _, err := createOrUpdateTable(ctx, x.clients.BigQuery(), x.metadata.Dataset(), x.metadata.Table(), md); err != nil {
		return err
	}

	return x.clients.BigQuery().Insert(ctx, x.metadata.Dataset(), x.metadata.Table(), schema, []any{syncLog})
}
