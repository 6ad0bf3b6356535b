package usecase

import (
	"context"
	"errors"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bqnvd/pkg/domain/model"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
	"github.com/secmon-lab/bqnvd/pkg/utils"
)

// EnsureDataset makes sure the dataset and its nvd table exist with the
// schema from the schema definition file. Creating a resource that
// already exists is not an error; anything else propagates.
func (x *UseCase) EnsureDataset(ctx context.Context, dataset types.BQDatasetID) error {
	schema, err := model.ParseSchemaFile(x.schemaPath)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve nvd schema", goerr.V("path", x.schemaPath))
	}

	if err := x.clients.BigQuery().CreateDataset(ctx, dataset); err != nil {
		if !errors.Is(err, types.ErrAlreadyExists) {
			return err
		}
		// it's ok, it already exists
	} else {
		utils.CtxLogger(ctx).Info("created dataset", "dataset", dataset)
	}

	md := &bigquery.TableMetadata{Schema: schema}
	if err := x.clients.BigQuery().CreateTable(ctx, dataset, NVDTable, md); err != nil {
		if !errors.Is(err, types.ErrAlreadyExists) {
			return err
		}
	} else {
		utils.CtxLogger(ctx).Info("created table", "dataset", dataset, "table", NVDTable)
	}

	return nil
}
