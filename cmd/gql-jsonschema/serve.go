package main

import (
	"context"
	"io"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/chirino/graphql-jsonschema/httpschema"
	"github.com/chirino/graphql-jsonschema/trace"
	"github.com/jensneuse/abstractlogger"
	"github.com/opentracing/opentracing-go"
	pe "github.com/pkg/errors"
	"github.com/spf13/cobra"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jaegerzap "github.com/uber/jaeger-client-go/log/zap"
)

func (c *cli) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "serves variable schemas over HTTP",
		Example: "gql-jsonschema serve --schema schema.graphql --listen :8080",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			g, err := c.generator(ctx, cfg)
			if err != nil {
				return err
			}
			if c.v.GetBool("jaeger") {
				closer, err := c.initJaeger()
				if err != nil {
					return err
				}
				defer closer.Close()
				g.Tracer = trace.OpenTracingTracer{}
			}

			server := &http.Server{
				Addr: cfg.Listen,
				Handler: &httpschema.Handler{
					Generator:           g,
					MaxRequestSizeBytes: cfg.MaxRequestSizeBytes,
					Indent:              cfg.Indent,
					Logger:              c.logger,
				},
				ReadHeaderTimeout: 10 * time.Second,
			}
			go func() {
				<-ctx.Done()
				shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = server.Shutdown(shutdown)
			}()

			c.logger.Info("listening", abstractlogger.String("addr", cfg.Listen))
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.String("listen", "", "address to listen on")
	flags.Int64("max-request-size", 0, "largest accepted request body in bytes")
	flags.Bool("jaeger", false, "report traces to jaeger, configured from the JAEGER_* environment variables")
	return cmd
}

func (c *cli) initJaeger() (io.Closer, error) {
	cfg, err := jaegercfg.FromEnv()
	if err != nil {
		return nil, pe.Wrap(err, "could not initialize jaeger")
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "gql-jsonschema"
	}
	tracer, closer, err := cfg.NewTracer(jaegercfg.Logger(jaegerzap.NewLogger(c.zap)))
	if err != nil {
		return nil, pe.Wrap(err, "could not initialize jaeger")
	}
	opentracing.SetGlobalTracer(tracer)
	c.logger.Debug("jaeger tracing enabled", abstractlogger.String("service", cfg.ServiceName))
	return closer, nil
}
