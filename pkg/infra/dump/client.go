package dump

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bqnvd/pkg/domain/interfaces"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
	"github.com/secmon-lab/bqnvd/pkg/utils"
	"google.golang.org/api/iterator"
)

// Client is a dry-run implementation of interfaces.BigQuery. It writes
// schemas and records to local files instead of BigQuery, and answers
// queries with empty results.
type Client struct {
	outDir string
}

var _ interfaces.BigQuery = &Client{}

// New returns a new instance of dumper Client.
func New(outDir string) *Client {
	return &Client{
		outDir: filepath.Clean(outDir),
	}
}

// Query implements interfaces.BigQuery. The dumper holds no data, so
// every query yields an empty result.
func (x *Client) Query(ctx context.Context, query string) (interfaces.BigQueryIterator, error) {
	utils.CtxLogger(ctx).Info("dry-run: query", "query", query)
	return &emptyIterator{}, nil
}

// CreateDataset implements interfaces.BigQuery. Nothing to do in dumper.
func (*Client) CreateDataset(ctx context.Context, dataset types.BQDatasetID) error {
	return nil
}

// CreateTable implements interfaces.BigQuery. It writes the table schema to "{outDir}/{dataset}.{table}.schema.json".
func (x *Client) CreateTable(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, md *bigquery.TableMetadata) error {
	return x.writeSchema(dataset, table, md.Schema)
}

// GetMetadata implements interfaces.BigQuery.
func (x *Client) GetMetadata(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID) (*bigquery.TableMetadata, error) {
	return &bigquery.TableMetadata{}, nil
}

// UpdateTable implements interfaces.BigQuery. It overwrites the schema file written by CreateTable.
func (x *Client) UpdateTable(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, md bigquery.TableMetadataToUpdate, eTag string) error {
	return x.writeSchema(dataset, table, md.Schema)
}

// Load implements interfaces.BigQuery. The load is logged, not executed.
func (x *Client) Load(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, uri types.CSUrl, schema bigquery.Schema) error {
	utils.CtxLogger(ctx).Info("dry-run: skip load job", "dataset", dataset, "table", table, "uri", uri)
	return nil
}

// Insert implements interfaces.BigQuery. It appends data to "{outDir}/{dataset}.{table}.log" in JSON format.
func (x *Client) Insert(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, schema bigquery.Schema, data []any) error {
	fname := fmt.Sprintf("%s.%s.log", dataset, table)
	fpath := filepath.Join(x.outDir, fname)
	fd, err := os.OpenFile(filepath.Clean(fpath), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return goerr.Wrap(err, "failed to create file", goerr.V("file", fpath))
	}
	defer fd.Close()

	encoder := json.NewEncoder(fd)
	for _, record := range data {
		if err := encoder.Encode(record); err != nil {
			return goerr.Wrap(err, "failed to encode record", goerr.V("record", record))
		}
	}

	return nil
}

func (x *Client) writeSchema(dataset types.BQDatasetID, table types.BQTableID, schema bigquery.Schema) error {
	fname := fmt.Sprintf("%s.%s.schema.json", dataset, table)
	fpath := filepath.Join(x.outDir, fname)
	fd, err := os.Create(filepath.Clean(fpath))
	if err != nil {
		return goerr.Wrap(err, "failed to create file", goerr.V("file", fpath))
	}
	defer fd.Close()

	raw, err := schema.ToJSONFields()
	if err != nil {
		return goerr.Wrap(err, "failed to convert schema to JSON fields", goerr.V("schema", schema))
	}

	if _, err := fd.Write(raw); err != nil {
		return goerr.Wrap(err, "failed to write schema", goerr.V("file", fpath))
	}

	return nil
}

type emptyIterator struct{}

func (x *emptyIterator) Next(dst interface{}) error {
	return iterator.Done
}
