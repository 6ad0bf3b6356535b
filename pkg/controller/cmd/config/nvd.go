package config

import (
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
	"github.com/urfave/cli/v2"
)

// NVD is the destination of CVE records: the BigQuery dataset and the
// schema definition of its nvd table.
type NVD struct {
	dataset    types.BQDatasetID
	schemaPath string
}

func (x *NVD) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "bq-dataset-id",
			Aliases:     []string{"d"},
			Usage:       "BigQuery dataset ID for CVE records",
			EnvVars:     []string{"BQNVD_BQ_DATASET_ID"},
			Destination: (*string)(&x.dataset),
		},
		&cli.StringFlag{
			Name:        "nvd-schema",
			Aliases:     []string{"s"},
			Usage:       "Path to the nvd table schema definition (JSON)",
			EnvVars:     []string{"BQNVD_NVD_SCHEMA"},
			Destination: &x.schemaPath,
		},
	}
}

func (x *NVD) Configure() error {
	if x.dataset == "" {
		return goerr.Wrap(types.ErrInvalidOption, "bq-dataset-id is required")
	}
	if x.schemaPath == "" {
		return goerr.Wrap(types.ErrInvalidOption, "nvd-schema is required")
	}

	return nil
}

func (x *NVD) Dataset() types.BQDatasetID { return x.dataset }
func (x *NVD) SchemaPath() string         { return x.schemaPath }

func (x *NVD) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("dataset", string(x.dataset)),
		slog.String("schemaPath", x.schemaPath),
	)
}
