package model

import "github.com/secmon-lab/bqnvd/pkg/domain/types"

// MetadataConfig is the destination of sync run records. It is optional
// and sync works without it.
type MetadataConfig struct {
	dataset types.BQDatasetID
	table   types.BQTableID
}

func NewMetadataConfig(dataset types.BQDatasetID, table types.BQTableID) *MetadataConfig {
	return &MetadataConfig{dataset: dataset, table: table}
}
func (x *MetadataConfig) Dataset() types.BQDatasetID { return x.dataset }
func (x *MetadataConfig) Table() types.BQTableID     { return x.table }
