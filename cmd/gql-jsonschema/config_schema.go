package main

import (
	"fmt"

	"github.com/chirino/graphql-jsonschema/config"
	"github.com/chirino/graphql-jsonschema/schema"
	"github.com/spf13/cobra"
)

func (c *cli) newConfigSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config-schema",
		Short: "prints the JSON Schema of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.JSONSchema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func (c *cli) newIntrospectionQueryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "introspection-query",
		Short: "prints the introspection query whose result --schema-format introspection reads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), schema.IntrospectionQuery)
			return err
		},
	}
}
