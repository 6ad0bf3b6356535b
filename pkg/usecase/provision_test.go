package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
	"github.com/secmon-lab/bqnvd/pkg/infra"
	"github.com/secmon-lab/bqnvd/pkg/infra/bq"
	"github.com/secmon-lab/bqnvd/pkg/usecase"
)

func TestEnsureDataset(t *testing.T) {
	ctx := context.Background()
	mock := bq.NewGeneralMock()
	uc := usecase.New(
		infra.New(infra.WithBigQuery(mock)),
		usecase.WithSchemaPath("testdata/nvd_schema.json"),
	)

	gt.NoError(t, uc.EnsureDataset(ctx, "blue"))

	gt.A(t, mock.Datasets).Length(1).At(0, func(t testing.TB, v types.BQDatasetID) {
		gt.Equal(t, v, "blue")
	})
	gt.A(t, mock.CreatedTable).Length(1)
	gt.Equal(t, mock.CreatedTable[0].Table, usecase.NVDTable)
	gt.A(t, mock.CreatedTable[0].MD.Schema).Length(3)

	// Provisioning again must not fail nor duplicate resources.
	gt.NoError(t, uc.EnsureDataset(ctx, "blue"))
	gt.A(t, mock.Datasets).Length(1)
	gt.A(t, mock.CreatedTable).Length(1)
}

func TestEnsureDatasetBadSchema(t *testing.T) {
	uc := usecase.New(
		infra.New(infra.WithBigQuery(bq.NewGeneralMock())),
		usecase.WithSchemaPath("testdata/no_such_schema.json"),
	)

	gt.Error(t, uc.EnsureDataset(context.Background(), "blue"))
}
