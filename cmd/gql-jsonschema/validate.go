package main

import (
	"fmt"
	"os"

	graphqljsonschema "github.com/chirino/graphql-jsonschema"
	"github.com/chirino/graphql-jsonschema/jsonschema"
	pe "github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func (c *cli) newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "validate QUERY_FILE VARIABLES_FILE",
		Short:   "checks a JSON variables file against the schema of an operation",
		Example: "gql-jsonschema validate --schema schema.graphql queries.graphql variables.json",
		Args:    cobra.ExactArgs(2),
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
			variables, err := os.ReadFile(args[1])
			if err != nil {
				return pe.Wrap(err, "reading variables")
			}

			validator, err := g.Validator(cmd.Context(), &graphqljsonschema.Request{
				Query:         string(queryData),
				OperationName: cfg.Operation,
			})
			if err != nil {
				return err
			}
			err = validator.Validate(variables)
			if verr, ok := err.(*jsonschema.ValidationError); ok {
				for _, v := range verr.Violations {
					location := v.InstanceLocation
					if location == "" {
						location = "/"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", location, v.Message)
				}
				return fmt.Errorf("%s: %d violation(s)", args[1], len(verr.Violations))
			}
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[1])
			return err
		},
	}
	flags := cmd.Flags()
	flags.String("operation", "", "operation whose variables are validated")
	return cmd
}
