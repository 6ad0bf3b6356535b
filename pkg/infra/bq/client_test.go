package bq_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
	"github.com/secmon-lab/bqnvd/pkg/infra/bq"
	"github.com/secmon-lab/bqnvd/pkg/utils"
	"google.golang.org/api/iterator"
)

func TestQuery(t *testing.T) {
	projectID := types.GoogleProjectID(utils.LoadEnv(t, "TEST_BIGQUERY_PROJECT_ID"))

	ctx := context.Background()
	client := gt.R1(bq.New(ctx, projectID)).NoError(t)

	it := gt.R1(client.Query(ctx, "SELECT CAST(17 AS INT64) AS Count")).NoError(t)

	var row map[string]bigquery.Value
	gt.NoError(t, it.Next(&row))
	gt.Equal(t, row["Count"], bigquery.Value(int64(17)))

	if err := it.Next(&row); !errors.Is(err, iterator.Done) {
		t.Errorf("expected iterator.Done, got %v", err)
	}
}

func TestQueryMissingTable(t *testing.T) {
	projectID := types.GoogleProjectID(utils.LoadEnv(t, "TEST_BIGQUERY_PROJECT_ID"))

	ctx := context.Background()
	client := gt.R1(bq.New(ctx, projectID)).NoError(t)

	_, err := client.Query(ctx, "SELECT 1 FROM no_such_dataset_bqnvd.nvd")
	gt.Error(t, err)
	if !errors.Is(err, types.ErrTableNotFound) {
		t.Errorf("error is not ErrTableNotFound: %v", err)
	}
}

func TestProvision(t *testing.T) {
	var (
		projectID = types.GoogleProjectID(utils.LoadEnv(t, "TEST_BIGQUERY_PROJECT_ID"))
		datasetID = types.BQDatasetID(utils.LoadEnv(t, "TEST_BIGQUERY_DATASET_ID"))
	)

	ctx := context.Background()
	client := gt.R1(bq.New(ctx, projectID)).NoError(t)

	if err := client.CreateDataset(ctx, datasetID); err != nil {
		if !errors.Is(err, types.ErrAlreadyExists) {
			t.Fatalf("failed to create dataset: %v", err)
		}
	}

	tableID := types.BQTableID(time.Now().Format("provision_20060102_150405"))
	md := &bigquery.TableMetadata{
		Schema: bigquery.Schema{
			{Name: "color", Type: bigquery.StringFieldType},
		},
		ExpirationTime: time.Now().Add(time.Hour),
	}
	gt.NoError(t, client.CreateTable(ctx, datasetID, tableID, md))

	err := client.CreateTable(ctx, datasetID, tableID, md)
	gt.Error(t, err)
	if !errors.Is(err, types.ErrAlreadyExists) {
		t.Errorf("error is not ErrAlreadyExists: %v", err)
	}

	got := gt.R1(client.GetMetadata(ctx, datasetID, tableID)).NoError(t)
	gt.A(t, got.Schema).Length(1)

	missing := gt.R1(client.GetMetadata(ctx, datasetID, "no_such_table_bqnvd")).NoError(t)
	if missing != nil {
		t.Errorf("metadata of a missing table must be nil, got %+v", missing)
	}
}
