package usecase

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
	"github.com/secmon-lab/bqnvd/pkg/utils"
	"google.golang.org/api/iterator"
)

// CountCVEs counts the CVE records present in the dataset. When the
// dataset or its nvd table does not exist yet, it is provisioned and
// the count is reported as zero instead of failing.
func (x *UseCase) CountCVEs(ctx context.Context, dataset types.BQDatasetID) (int64, error) {
	query := fmt.Sprintf("SELECT COUNT(cve.CVE_data_meta.ID) AS Count FROM %s.nvd", dataset)

	it, err := x.clients.BigQuery().Query(ctx, query)
	if err != nil {
		if errors.Is(err, types.ErrTableNotFound) {
			// Dataset doesn't exist yet, so create it
			utils.CtxLogger(ctx).Info("dataset not found, provisioning", "dataset", dataset)
			if err := x.EnsureDataset(ctx, dataset); err != nil {
				return 0, err
			}
			return 0, nil
		}
		return 0, err
	}

	// The query returns a single row; an empty result counts as zero.
	var row map[string]bigquery.Value
	if err := it.Next(&row); err != nil {
		if errors.Is(err, iterator.Done) {
			return 0, nil
		}
		return 0, goerr.Wrap(err, "failed to read count result", goerr.V("query", query))
	}

	count, ok := row["Count"].(int64)
	if !ok {
		return 0, goerr.Wrap(types.ErrAssertion, "Count column is not an integer", goerr.V("row", row))
	}

	return count, nil
}

// ListCVEIDs returns the IDs of all CVE records in the dataset, in
// query result order.
func (x *UseCase) ListCVEIDs(ctx context.Context, dataset types.BQDatasetID) ([]types.CVEID, error) {
	query := fmt.Sprintf("SELECT cve.CVE_data_meta.ID AS ID FROM %s.nvd", dataset)

	it, err := x.clients.BigQuery().Query(ctx, query)
	if err != nil {
		return nil, err
	}

	var ids []types.CVEID
	for {
		var row map[string]bigquery.Value
		if err := it.Next(&row); err != nil {
			if errors.Is(err, iterator.Done) {
				break
			}
			return nil, goerr.Wrap(err, "failed to read ID result", goerr.V("query", query))
		}

		id, ok := row["ID"].(string)
		if !ok {
			return nil, goerr.Wrap(types.ErrAssertion, "ID column is not a string", goerr.V("row", row))
		}
		ids = append(ids, types.CVEID(id))
	}

	return ids, nil
}
