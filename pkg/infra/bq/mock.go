package bq

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bqnvd/pkg/domain/interfaces"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
	"google.golang.org/api/iterator"
)

type Mock struct {
	MockQuery         func(ctx context.Context, query string) (interfaces.BigQueryIterator, error)
	MockCreateDataset func(ctx context.Context, dataset types.BQDatasetID) error
	MockCreateTable   func(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, md *bigquery.TableMetadata) error
	MockGetMetadata   func(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID) (*bigquery.TableMetadata, error)
	MockUpdateTable   func(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, md bigquery.TableMetadataToUpdate, eTag string) error
	MockLoad          func(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, uri types.CSUrl, schema bigquery.Schema) error
	MockInsert        func(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, schema bigquery.Schema, data []any) error
}

var _ interfaces.BigQuery = &Mock{}

func NewMock() *Mock {
	return &Mock{}
}

func (x *Mock) Query(ctx context.Context, query string) (interfaces.BigQueryIterator, error) {
	if x.MockQuery != nil {
		return x.MockQuery(ctx, query)
	}
	return &MockIterator{}, nil
}

func (x *Mock) CreateDataset(ctx context.Context, dataset types.BQDatasetID) error {
	if x.MockCreateDataset != nil {
		return x.MockCreateDataset(ctx, dataset)
	}
	return nil
}

func (x *Mock) CreateTable(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, md *bigquery.TableMetadata) error {
	if x.MockCreateTable != nil {
		return x.MockCreateTable(ctx, dataset, table, md)
	}
	return nil
}

func (x *Mock) GetMetadata(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID) (*bigquery.TableMetadata, error) {
	if x.MockGetMetadata != nil {
		return x.MockGetMetadata(ctx, dataset, table)
	}
	return nil, nil
}

func (x *Mock) UpdateTable(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, md bigquery.TableMetadataToUpdate, eTag string) error {
	if x.MockUpdateTable != nil {
		return x.MockUpdateTable(ctx, dataset, table, md, eTag)
	}
	return nil
}

func (x *Mock) Load(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, uri types.CSUrl, schema bigquery.Schema) error {
	if x.MockLoad != nil {
		return x.MockLoad(ctx, dataset, table, uri, schema)
	}
	return nil
}

func (x *Mock) Insert(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, schema bigquery.Schema, data []any) error {
	if x.MockInsert != nil {
		return x.MockInsert(ctx, dataset, table, schema, data)
	}
	return nil
}

// MockIterator replays prepared rows. Only *map[string]bigquery.Value
// destinations are supported.
type MockIterator struct {
	Rows []map[string]bigquery.Value
	idx  int
}

func (x *MockIterator) Next(dst interface{}) error {
	if x.idx >= len(x.Rows) {
		return iterator.Done
	}

	row, ok := dst.(*map[string]bigquery.Value)
	if !ok {
		return goerr.Wrap(types.ErrAssertion, "mock iterator supports only *map[string]bigquery.Value")
	}

	*row = x.Rows[x.idx]
	x.idx++
	return nil
}

var _ interfaces.BigQueryIterator = &MockIterator{}

func NewGeneralMock() *GeneralMock {
	return &GeneralMock{}
}

// GeneralMock records all calls and emulates create-if-absent semantics
// of datasets and tables: creating an existing resource fails with
// types.ErrAlreadyExists, like the real service does.
type GeneralMock struct {
	mutex sync.Mutex

	Queries   []string
	Results   []*MockIterator
	QueryErrs []error

	Datasets []types.BQDatasetID

	CreatedTable []struct {
		Dataset types.BQDatasetID
		Table   types.BQTableID
		MD      *bigquery.TableMetadata
	}

	Metadata []*bigquery.TableMetadata

	UpdatedTable []struct {
		Dataset types.BQDatasetID
		Table   types.BQTableID
		MD      bigquery.TableMetadataToUpdate
		ETag    string
	}

	Loads []struct {
		Dataset types.BQDatasetID
		Table   types.BQTableID
		URI     types.CSUrl
		Schema  bigquery.Schema
	}
	LoadDelay time.Duration
	LoadErr   error

	Inserted []struct {
		Dataset types.BQDatasetID
		Table   types.BQTableID
		Schema  bigquery.Schema
		Data    []any
	}
}

var _ interfaces.BigQuery = &GeneralMock{}

// Query implements interfaces.BigQuery. Prepared QueryErrs and Results
// are consumed one per call; when exhausted, an empty iterator is
// returned.
func (x *GeneralMock) Query(ctx context.Context, query string) (interfaces.BigQueryIterator, error) {
	x.mutex.Lock()
	defer x.mutex.Unlock()

	x.Queries = append(x.Queries, query)

	if len(x.QueryErrs) > 0 {
		err := x.QueryErrs[0]
		x.QueryErrs = x.QueryErrs[1:]
		if err != nil {
			return nil, err
		}
	}

	if len(x.Results) > 0 {
		it := x.Results[0]
		x.Results = x.Results[1:]
		return it, nil
	}

	return &MockIterator{}, nil
}

// CreateDataset implements interfaces.BigQuery.
func (x *GeneralMock) CreateDataset(ctx context.Context, dataset types.BQDatasetID) error {
	x.mutex.Lock()
	defer x.mutex.Unlock()

	for _, d := range x.Datasets {
		if d == dataset {
			return goerr.Wrap(types.ErrAlreadyExists, "dataset already exists", goerr.V("dataset", dataset))
		}
	}

	x.Datasets = append(x.Datasets, dataset)
	return nil
}

// CreateTable implements interfaces.BigQuery.
func (x *GeneralMock) CreateTable(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, md *bigquery.TableMetadata) error {
	x.mutex.Lock()
	defer x.mutex.Unlock()

	for _, t := range x.CreatedTable {
		if t.Dataset == dataset && t.Table == table {
			return goerr.Wrap(types.ErrAlreadyExists, "table already exists", goerr.V("dataset", dataset), goerr.V("table", table))
		}
	}

	x.CreatedTable = append(x.CreatedTable, struct {
		Dataset types.BQDatasetID
		Table   types.BQTableID
		MD      *bigquery.TableMetadata
	}{Dataset: dataset, Table: table, MD: md})

	return nil
}

// GetMetadata implements interfaces.BigQuery.
func (x *GeneralMock) GetMetadata(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID) (*bigquery.TableMetadata, error) {
	x.mutex.Lock()
	defer x.mutex.Unlock()

	if len(x.Metadata) == 0 {
		return nil, nil
	}
	md := x.Metadata[0]
	x.Metadata = x.Metadata[1:]
	return md, nil
}

// UpdateTable implements interfaces.BigQuery.
func (x *GeneralMock) UpdateTable(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, md bigquery.TableMetadataToUpdate, eTag string) error {
	x.mutex.Lock()
	defer x.mutex.Unlock()

	x.UpdatedTable = append(x.UpdatedTable, struct {
		Dataset types.BQDatasetID
		Table   types.BQTableID
		MD      bigquery.TableMetadataToUpdate
		ETag    string
	}{Dataset: dataset, Table: table, MD: md, ETag: eTag})

	return nil
}

// Load implements interfaces.BigQuery. LoadDelay emulates a slow load
// job to verify the blocking contract of callers.
func (x *GeneralMock) Load(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, uri types.CSUrl, schema bigquery.Schema) error {
	if x.LoadDelay > 0 {
		select {
		case <-ctx.Done():
			return goerr.Wrap(ctx.Err(), "context is canceled")
		case <-time.After(x.LoadDelay):
		}
	}

	x.mutex.Lock()
	defer x.mutex.Unlock()

	x.Loads = append(x.Loads, struct {
		Dataset types.BQDatasetID
		Table   types.BQTableID
		URI     types.CSUrl
		Schema  bigquery.Schema
	}{Dataset: dataset, Table: table, URI: uri, Schema: schema})

	return x.LoadErr
}

// Insert implements interfaces.BigQuery.
func (x *GeneralMock) Insert(ctx context.Context, dataset types.BQDatasetID, table types.BQTableID, schema bigquery.Schema, data []any) error {
	x.mutex.Lock()
	defer x.mutex.Unlock()

	x.Inserted = append(x.Inserted, struct {
		Dataset types.BQDatasetID
		Table   types.BQTableID
		Schema  bigquery.Schema
		Data    []any
	}{Dataset: dataset, Table: table, Schema: schema, Data: data})

	return nil
}
