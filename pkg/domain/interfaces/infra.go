package interfaces

import (
	"context"
	"io"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/storage"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
)

type BigQueryIterator interface {
	Next(dst interface{}) error
}

type BigQuery interface {
	Query(ctx context.Context, query string) (BigQueryIterator, error)

	CreateDataset(ctx context.Context, dataset types.BQDatasetID) error
	CreateTable(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, md *bigquery.TableMetadata) error
	GetMetadata(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID) (*bigquery.TableMetadata, error)
	UpdateTable(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, md bigquery.TableMetadataToUpdate, eTag string) error

	// Load runs a load job from a Cloud Storage URI and waits until the
	// job has finished.
	Load(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, uri types.CSUrl, schema bigquery.Schema) error

	Insert(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, schema bigquery.Schema, data []any) error
}

type CloudStorage interface {
	Create(ctx context.Context, bucket types.CSBucket, object types.CSObjectID) io.WriteCloser
	Attrs(ctx context.Context, bucket types.CSBucket, object types.CSObjectID) (*storage.ObjectAttrs, error)
}

type NVDFeed interface {
	// Download fetches the compressed feed named by name into dir and
	// returns the path of the downloaded file.
	Download(ctx context.Context, name types.FeedName, dir string) (string, error)
}
