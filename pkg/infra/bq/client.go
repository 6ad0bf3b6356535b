package bq

import (
	"context"
	"errors"
	"net/http"

	"cloud.google.com/go/bigquery"
	"github.com/googleapis/gax-go/v2/apierror"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bqnvd/pkg/domain/interfaces"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
	"google.golang.org/api/googleapi"
)

type Client struct {
	bqClient  *bigquery.Client
	projectID types.GoogleProjectID
}

var _ interfaces.BigQuery = &Client{}

// New creates a BigQuery session for projectID. It fails when ambient
// credentials can not be resolved.
func New(ctx context.Context, projectID types.GoogleProjectID) (*Client, error) {
	bqClient, err := bigquery.NewClient(ctx, projectID.String())
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create bigquery client", goerr.V("projectID", projectID))
	}

	return &Client{
		bqClient:  bqClient,
		projectID: projectID,
	}, nil
}

// normalizeErr maps service status codes onto the sentinel errors so
// that callers can branch with errors.Is.
func normalizeErr(err error) error {
	code := 0
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		code = gErr.Code
	} else if apiErr, ok := apierror.FromError(err); ok {
		code = apiErr.HTTPCode()
	}

	switch code {
	case http.StatusBadRequest:
		return goerr.Wrap(types.ErrInvalidRequest, err.Error())
	case http.StatusNotFound:
		return goerr.Wrap(types.ErrTableNotFound, err.Error())
	case http.StatusConflict:
		return goerr.Wrap(types.ErrAlreadyExists, err.Error())
	}

	return err
}

// Query implements interfaces.BigQuery.
func (x *Client) Query(ctx context.Context, query string) (interfaces.BigQueryIterator, error) {
	q := x.bqClient.Query(query)
	it, err := q.Read(ctx)
	if err != nil {
		return nil, goerr.Wrap(normalizeErr(err), "failed to read query result", goerr.V("query", query))
	}

	return it, nil
}

// CreateDataset implements interfaces.BigQuery.
func (x *Client) CreateDataset(ctx context.Context, dataset types.BQDatasetID) error {
	if err := x.bqClient.Dataset(dataset.String()).Create(ctx, &bigquery.DatasetMetadata{}); err != nil {
		return goerr.Wrap(normalizeErr(err), "failed to create dataset", goerr.V("dataset", dataset))
	}

	return nil
}

// CreateTable implements interfaces.BigQuery.
func (x *Client) CreateTable(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, md *bigquery.TableMetadata) error {
	if err := x.bqClient.Dataset(dataset.String()).Table(table.String()).Create(ctx, md); err != nil {
		return goerr.Wrap(normalizeErr(err), "failed to create table", goerr.V("dataset", dataset), goerr.V("table", table))
	}

	return nil
}

// GetMetadata implements interfaces.BigQuery. If the table does not exist, it returns nil.
func (x *Client) GetMetadata(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID) (*bigquery.TableMetadata, error) {
	md, err := x.bqClient.Dataset(dataset.String()).Table(table.String()).Metadata(ctx)
	if err != nil {
		if errors.Is(normalizeErr(err), types.ErrTableNotFound) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to get table metadata")
	}

	return md, nil
}

// UpdateTable implements interfaces.BigQuery.
func (x *Client) UpdateTable(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, md bigquery.TableMetadataToUpdate, eTag string) error {
	if _, err := x.bqClient.Dataset(dataset.String()).Table(table.String()).Update(ctx, md, eTag); err != nil {
		return goerr.Wrap(normalizeErr(err), "failed to update table schema", goerr.V("dataset", dataset), goerr.V("table", table))
	}

	return nil
}

// Load implements interfaces.BigQuery. It runs a load job importing
// newline delimited JSON from a Cloud Storage URI and waits for the job
// to finish. Fields present in the source but absent from the schema
// are ignored instead of failing the job.
func (x *Client) Load(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, uri types.CSUrl, schema bigquery.Schema) error {
	gcsRef := bigquery.NewGCSReference(uri.String())
	gcsRef.SourceFormat = bigquery.JSON
	gcsRef.Schema = schema
	gcsRef.IgnoreUnknownValues = true

	loader := x.bqClient.Dataset(dataset.String()).Table(table.String()).LoaderFrom(gcsRef)

	job, err := loader.Run(ctx)
	if err != nil {
		return goerr.Wrap(normalizeErr(err), "failed to start load job", goerr.V("uri", uri))
	}

	status, err := job.Wait(ctx)
	if err != nil {
		return goerr.Wrap(normalizeErr(err), "failed to wait load job", goerr.V("uri", uri), goerr.V("jobID", job.ID()))
	}
	if err := status.Err(); err != nil {
		return goerr.Wrap(normalizeErr(err), "load job failed", goerr.V("uri", uri), goerr.V("jobID", job.ID()))
	}

	return nil
}

// Insert implements interfaces.BigQuery.
func (x *Client) Insert(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, schema bigquery.Schema, data []any) error {
	savers := make([]*bigquery.StructSaver, len(data))
	for i, v := range data {
		savers[i] = &bigquery.StructSaver{
			Schema: schema,
			Struct: v,
		}
	}

	inserter := x.bqClient.Dataset(dataset.String()).Table(table.String()).Inserter()
	if err := inserter.Put(ctx, savers); err != nil {
		return goerr.Wrap(normalizeErr(err), "failed to insert data", goerr.V("dataset", dataset), goerr.V("table", table))
	}

	return nil
}
