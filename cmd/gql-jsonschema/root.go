package main

import (
	"context"
	"os"
	"strings"

	graphqljsonschema "github.com/chirino/graphql-jsonschema"
	"github.com/chirino/graphql-jsonschema/config"
	"github.com/chirino/graphql-jsonschema/httpschema"
	"github.com/jensneuse/abstractlogger"
	pe "github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const envPrefix = "GQLJS"

// cli carries the state shared by the commands of one invocation.
type cli struct {
	v      *viper.Viper
	zap    *zap.Logger
	logger abstractlogger.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{
		v:      viper.New(),
		zap:    zap.NewNop(),
		logger: abstractlogger.NoopLogger,
	}
	c.v.SetEnvPrefix(envPrefix)
	c.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.v.AutomaticEnv()

	root := &cobra.Command{
		Use:          "gql-jsonschema",
		Short:        "generates JSON Schema documents for GraphQL operation variables",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// generate and validate both declare --operation
			c.bind(cmd.Flags())
			return c.initLogger()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = c.zap.Sync()
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "configuration file (YAML or JSON)")
	flags.String("schema", "", "GraphQL schema file")
	flags.String("schema-format", "", "format of the schema file: sdl or introspection")
	flags.String("schema-url", "", "introspect this GraphQL endpoint instead of reading a schema file")
	flags.Bool("markdown", false, "add markdownDescription keywords")
	flags.String("scalar-schemas", "", "YAML or JSON file of custom scalar schemas")
	flags.Bool("debug", false, "enable debug logging")

	root.AddCommand(
		c.newGenerateCmd(),
		c.newValidateCmd(),
		c.newServeCmd(),
		c.newConfigSchemaCmd(),
		c.newIntrospectionQueryCmd(),
	)
	return root
}

func (c *cli) bind(flags *pflag.FlagSet) {
	_ = c.v.BindPFlags(flags)
}

func (c *cli) initLogger() error {
	var (
		logger *zap.Logger
		err    error
	)
	if c.v.GetBool("debug") {
		logger, err = zap.NewDevelopmentConfig().Build()
	} else {
		cfg := zap.NewProductionConfig()
		cfg.OutputPaths = []string{"stderr"}
		logger, err = cfg.Build()
	}
	if err != nil {
		return pe.Wrap(err, "initializing logger")
	}
	c.zap = logger
	c.logger = abstractlogger.NewZapLogger(logger, abstractlogger.DebugLevel)
	return nil
}

// config loads the configuration file, if any, and applies the flags and environment
// variables that were set on top of it.
func (c *cli) config() (*config.Config, error) {
	cfg := config.Default()
	if path := c.v.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	setString := func(key string, target *string) {
		if c.v.IsSet(key) {
			*target = c.v.GetString(key)
		}
	}
	setString("schema", &cfg.Schema)
	setString("schema-format", &cfg.SchemaFormat)
	setString("schema-url", &cfg.SchemaURL)
	setString("scalar-schemas", &cfg.ScalarSchemasFile)
	setString("operation", &cfg.Operation)
	setString("format", &cfg.Format)
	setString("indent", &cfg.Indent)
	setString("listen", &cfg.Listen)
	if c.v.IsSet("markdown") {
		cfg.UseMarkdownDescription = c.v.GetBool("markdown")
	}
	if c.v.IsSet("max-request-size") {
		cfg.MaxRequestSizeBytes = c.v.GetInt64("max-request-size")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *cli) generator(ctx context.Context, cfg *config.Config) (*graphqljsonschema.Generator, error) {
	g := graphqljsonschema.New()
	g.Logger = c.logger

	if cfg.SchemaURL != "" {
		c.logger.Debug("introspecting schema", abstractlogger.String("url", cfg.SchemaURL))
		s, err := httpschema.NewClient(cfg.SchemaURL).FetchSchema(ctx)
		if err != nil {
			return nil, err
		}
		g.Schema = s
	} else {
		data, err := os.ReadFile(cfg.Path(cfg.Schema))
		if err != nil {
			return nil, pe.Wrap(err, "reading schema")
		}
		switch cfg.SchemaFormat {
		case config.SchemaFormatIntrospection:
			err = g.Schema.ParseIntrospection(data)
		default:
			err = g.Schema.Parse(string(data))
		}
		if err != nil {
			return nil, err
		}
	}

	options, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	g.Options = options
	c.logger.Debug("schema loaded", abstractlogger.Int("types", len(g.Schema.Types)))
	return g, nil
}
