package main

import (
	"encoding/json"
	"fmt"
	"os"

	graphqljsonschema "github.com/chirino/graphql-jsonschema"
	"github.com/chirino/graphql-jsonschema/config"
	pe "github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func (c *cli) newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "generate QUERY_FILE",
		Short:   "prints the JSON Schema of an operation's variables",
		Example: "gql-jsonschema generate --schema schema.graphql --operation Search queries.graphql",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			g, err := c.generator(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			queryData, err := os.ReadFile(args[0])
			if err != nil {
				return pe.Wrap(err, "reading query")
			}

			var data []byte
			switch cfg.Format {
			case config.FormatOpenAPI:
				spec, err := g.OpenAPI(cmd.Context(), string(queryData), cfg.Operation, "GraphQL operations", "1.0.0")
				if err != nil {
					return err
				}
				data, err = json.MarshalIndent(spec, "", cfg.Indent)
				if err != nil {
					return err
				}
			default:
				doc, err := g.Generate(cmd.Context(), &graphqljsonschema.Request{
					Query:         string(queryData),
					OperationName: cfg.Operation,
				})
				if err != nil {
					return err
				}
				if cfg.Format == config.FormatYAML {
					data, err = doc.YAML()
				} else {
					data, err = doc.MarshalIndent("", cfg.Indent)
				}
				if err != nil {
					return err
				}
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
	flags := cmd.Flags()
	flags.String("operation", "", "operation to generate the schema of (a glob pattern with --format openapi)")
	flags.String("format", "", "output format: json, yaml or openapi")
	flags.String("indent", "", "indentation of JSON output")
	return cmd
}
