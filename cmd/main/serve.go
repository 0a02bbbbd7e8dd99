package main

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/arbstatistix/financial-engineering/src/config"
	"github.com/arbstatistix/financial-engineering/src/grpc_control"
	"github.com/arbstatistix/financial-engineering/src/logger"
	"github.com/arbstatistix/financial-engineering/src/server"

	"github.com/spf13/cobra"
)

// -----------------------------------------------------------------------------

func (a *app) serveCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "serve [config.json]",
		Short: "Serve the configuration over HTTP and gRPC, with live reload",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.configPath(args)
			provider, err := config.NewFileProvider(path)
			if err != nil {
				return a.loadFailed(path, err)
			}
			a.loaded(provider.Current())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, provider)
		},
	}

	c.Flags().String("http-addr", ":8090", "HTTP listen address")
	c.Flags().String("grpc-addr", ":50051", "gRPC listen address")
	return c
}

// -----------------------------------------------------------------------------

func (a *app) serve(ctx context.Context, provider *config.FileProvider) error {
	log := a.logger

	httpSrv := server.NewConfigServer(provider, logger.NewLoggerTo(a.stderr, provider.Current().LoggerSettings(), "ConfigServer"))

	svc := grpc_control.NewConfigService(provider, logger.NewLoggerTo(a.stderr, provider.Current().LoggerSettings(), "ConfigService"))
	svc.OnReload = func(*config.Config) { httpSrv.Publish() }
	grpcSrv := grpc_control.NewServer(svc, svc.Logger)

	lis, err := net.Listen("tcp", a.settings.GRPCAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.settings.GRPCAddr, err)
	}

	errs := make(chan error, 2)
	go func() { errs <- grpcSrv.Serve(lis) }()
	go func() { errs <- httpSrv.Start(a.settings.HTTPAddr) }()

	select {
	case <-ctx.Done():
		log.Info("Shutting down...")
	case err = <-errs:
		log.Error("Server stopped: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if serr := httpSrv.Stop(shutdownCtx); serr != nil {
		log.Warning("HTTP shutdown: %v", serr)
	}
	grpcSrv.Stop()
	return err
}
