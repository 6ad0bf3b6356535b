package cmd

import (
	"github.com/hashicorp/go-multierror"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bqnvd/pkg/controller/cmd/config"
	"github.com/secmon-lab/bqnvd/pkg/domain/interfaces"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
	"github.com/secmon-lab/bqnvd/pkg/infra"
	"github.com/secmon-lab/bqnvd/pkg/infra/cs"
	"github.com/secmon-lab/bqnvd/pkg/infra/dump"
	"github.com/secmon-lab/bqnvd/pkg/usecase"
	"github.com/secmon-lab/bqnvd/pkg/utils"
	"github.com/urfave/cli/v2"
)

func syncCommand() *cli.Command {
	var (
		dryRun bool
		output string

		bigquery config.BigQuery
		nvd      config.NVD
		feedCfg  config.Feed
		metadata config.Metadata
	)
	return &cli.Command{
		Name:      "sync",
		Aliases:   []string{"s"},
		Usage:     "Synchronize NVD feeds into BigQuery (bootstrap or incremental)",
		ArgsUsage: "[feed name...]",
		Flags: mergeFlags([]cli.Flag{
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Dry run mode, write records and schemas to local files",
				EnvVars:     []string{"BQNVD_DRY_RUN"},
				Destination: &dryRun,
			},
			&cli.StringFlag{
				Name:        "output",
				Aliases:     []string{"o"},
				Usage:       "Output directory path for dry run, default is current directory",
				EnvVars:     []string{"BQNVD_OUTPUT"},
				Value:       ".",
				Destination: &output,
			},
		}, bigquery.Flags(), nvd.Flags(), feedCfg.Flags(), metadata.Flags()),

		Action: func(c *cli.Context) error {
			ctx := c.Context

			if err := nvd.Configure(); err != nil {
				return err
			}

			var bqClient interfaces.BigQuery
			if dryRun {
				utils.Logger().Info("dry run mode")
				bqClient = dump.New(output)
			} else {
				client, err := bigquery.Configure(ctx)
				if err != nil {
					return err
				}
				bqClient = client
				utils.Logger().Info("using BigQuery", "project", bigquery.ProjectID())
			}

			feedClient, err := feedCfg.Configure()
			if err != nil {
				return err
			}

			csClient, err := cs.New(ctx)
			if err != nil {
				return err
			}

			meta, err := metadata.Configure()
			if err != nil {
				return err
			}

			clients := infra.New(
				infra.WithBigQuery(bqClient),
				infra.WithCloudStorage(csClient),
				infra.WithFeed(feedClient),
			)

			options := []usecase.Option{
				usecase.WithDataset(nvd.Dataset()),
				usecase.WithSchemaPath(nvd.SchemaPath()),
				usecase.WithBucket(feedCfg.Bucket()),
				usecase.WithLocalDir(feedCfg.LocalDir()),
			}
			if meta != nil {
				options = append(options, usecase.WithMetadata(meta))
			}
			uc := usecase.New(clients, options...)

			// Without arguments the greenfield/brownfield decision is
			// up to the use case; named feeds are synced as given.
			if c.Args().Len() == 0 {
				return uc.Sync(ctx)
			}

			var errs *multierror.Error
			for i := 0; i < c.Args().Len(); i++ {
				name := types.FeedName(c.Args().Get(i))
				if err := uc.SyncFeed(ctx, name); err != nil {
					errs = multierror.Append(errs, goerr.Wrap(err, "failed to sync feed", goerr.V("feed", name)))
				}
			}

			return errs.ErrorOrNil()
		},
	}
}
