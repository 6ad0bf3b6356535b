package cmd

import (
	"github.com/secmon-lab/bqnvd/pkg/controller/cmd/config"
	"github.com/secmon-lab/bqnvd/pkg/domain/types"
	"github.com/secmon-lab/bqnvd/pkg/utils"

	"github.com/urfave/cli/v2"
)

func Run(argv []string) error {
	var (
		loggerCfg config.Logger
		sentryCfg config.Sentry
	)

	app := cli.App{
		Name:        "bqnvd",
		Description: "Synchronization tool of NVD CVE feeds into BigQuery",
		Version:     types.AppVersion,
		Flags:       mergeFlags([]cli.Flag{}, loggerCfg.Flags(), sentryCfg.Flags()),
		Before: func(c *cli.Context) error {
			logger, err := loggerCfg.Configure()
			if err != nil {
				return err
			}
			utils.SetLogger(logger)

			if err := sentryCfg.Configure(); err != nil {
				return err
			}

			// All records of one invocation share a request ID
			reqID, ctx := utils.CtxRequestID(c.Context)
			c.Context = utils.CtxWithLogger(ctx, utils.Logger().With("request_id", reqID.String()))
			return nil
		},
		Commands: []*cli.Command{
			syncCommand(),
			countCommand(),
			idsCommand(),
			loadCommand(),
			schemaCommand(),
		},
	}

	if err := app.Run(argv); err != nil {
		utils.Logger().Error("failed to run command", utils.ErrLog(err))
		return err
	}

	return nil
}
