package cmd

import (
	"fmt"

	"github.com/secmon-lab/bqnvd/pkg/controller/cmd/config"
	"github.com/secmon-lab/bqnvd/pkg/infra"
	"github.com/secmon-lab/bqnvd/pkg/usecase"
	"github.com/urfave/cli/v2"
)

func countCommand() *cli.Command {
	var (
		bigquery config.BigQuery
		nvd      config.NVD
	)
	return &cli.Command{
		Name:  "count",
		Usage: "Count CVE records in the dataset, provisioning it when absent",
		Flags: mergeFlags([]cli.Flag{}, bigquery.Flags(), nvd.Flags()),

		Action: func(c *cli.Context) error {
			ctx := c.Context

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

			count, err := uc.CountCVEs(ctx, nvd.Dataset())
			if err != nil {
				return err
			}

			fmt.Fprintln(c.App.Writer, count)
			return nil
		},
	}
}

func idsCommand() *cli.Command {
	var (
		bigquery config.BigQuery
		nvd      config.NVD
	)
	return &cli.Command{
		Name:  "ids",
		Usage: "List CVE IDs in the dataset",
		Flags: mergeFlags([]cli.Flag{}, bigquery.Flags(), nvd.Flags()),

		Action: func(c *cli.Context) error {
			ctx := c.Context

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

			ids, err := uc.ListCVEIDs(ctx, nvd.Dataset())
			if err != nil {
				return err
			}

			for _, id := range ids {
				fmt.Fprintln(c.App.Writer, id)
			}
			return nil
		},
	}
}
