package cmd

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bqnvd/pkg/controller/cmd/config"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
	"github.com/secmon-lab/bqnvd/pkg/infra"
	"github.com/secmon-lab/bqnvd/pkg/usecase"
	"github.com/secmon-lab/bqnvd/pkg/utils"
	"github.com/urfave/cli/v2"
)

func loadCommand() *cli.Command {
	var (
		ensure bool

		bigquery config.BigQuery
		nvd      config.NVD
	)
	return &cli.Command{
		Name:      "load",
		Aliases:   []string{"l"},
		Usage:     "Bulk load newline delimited JSON from Cloud Storage into the nvd table",
		ArgsUsage: "[gs://bucket/object...]",
		Flags: mergeFlags([]cli.Flag{
			&cli.BoolFlag{
				Name:        "ensure",
				Usage:       "Provision the dataset and table before loading",
				EnvVars:     []string{"BQNVD_ENSURE"},
				Destination: &ensure,
			},
		}, bigquery.Flags(), nvd.Flags()),

		Action: func(c *cli.Context) error {
			ctx := c.Context

			if c.Args().Len() == 0 {
				return goerr.Wrap(types.ErrInvalidOption, "at least one gs:// URL is required")
			}

			if err := nvd.Configure(); err != nil {
				return err
			}

			bqClient, err := bigquery.Configure(ctx)
			if err != nil {
				return err
			}

			uc := usecase.New(
				infra.New(infra.WithBigQuery(bqClient)),
				usecase.WithDataset(nvd.Dataset()),
				usecase.WithSchemaPath(nvd.SchemaPath()),
			)

			if ensure {
				if err := uc.EnsureDataset(ctx, nvd.Dataset()); err != nil {
					return err
				}
			}

			for i := 0; i < c.Args().Len(); i++ {
				uri := types.CSUrl(c.Args().Get(i))
				if _, _, err := uri.Parse(); err != nil {
					return err
				}

				if err := uc.BulkLoad(ctx, nvd.Dataset(), uri); err != nil {
					return err
				}
				utils.Logger().Info("loaded", "uri", uri, "dataset", nvd.Dataset())
			}

			return nil
		},
	}
}
