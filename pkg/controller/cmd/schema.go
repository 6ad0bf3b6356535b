package cmd

import (
	"fmt"

	"github.com/secmon-lab/bqnvd/pkg/domain/model"
	"github.com/urfave/cli/v2"
)

func schemaCommand() *cli.Command {
	var (
		schemaPath string
	)
	return &cli.Command{
		Name:  "schema",
		Usage: "Resolve a schema definition file and print the BigQuery schema as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "nvd-schema",
				Aliases:     []string{"s"},
				Usage:       "Path to the nvd table schema definition (JSON)",
				EnvVars:     []string{"BQNVD_NVD_SCHEMA"},
				Destination: &schemaPath,
				Required:    true,
			},
		},

		Action: func(c *cli.Context) error {
			schema, err := model.ParseSchemaFile(schemaPath)
			if err != nil {
				return err
			}

			raw, err := schema.ToJSONFields()
			if err != nil {
				return err
			}

			fmt.Fprintln(c.App.Writer, string(raw))
			return nil
		},
	}
}
