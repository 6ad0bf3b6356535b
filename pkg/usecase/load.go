package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bqnvd/pkg/domain/model"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
)

// BulkLoad imports newline delimited JSON records from a Cloud Storage
// URI into the nvd table of the dataset. The call blocks until the
// warehouse reports the load job as finished, so that following set
// calculations observe a fully loaded table instead of a partial one.
func (x *UseCase) BulkLoad(ctx context.Context, dataset types.BQDatasetID, uri types.CSUrl) error {
	schema, err := model.ParseSchemaFile(x.schemaPath)
	if err != nil {
		return goerr.Wrap(err, "failed to resolve nvd schema", goerr.V("path", x.schemaPath))
	}

	return x.clients.BigQuery().Load(ctx, dataset, NVDTable, uri, schema)
}
