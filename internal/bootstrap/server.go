package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/Domenick1991/flightbook/api"
	"github.com/Domenick1991/flightbook/config"
	flightsapi "github.com/Domenick1991/flightbook/internal/api/flights_service_api"
	"github.com/Domenick1991/flightbook/internal/service/flights"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
)

const shutdownTimeout = 5 * time.Second

type Servers struct {
	grpcServer *grpc.Server
	httpServer *http.Server
}

// Run starts the HTTP server, and the gRPC server when an address is
// configured, then blocks until ctx is canceled or a server fails.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, log logrus.FieldLogger) error {
	s := newServers(cfg, flightSvc, log)

	httpLis, err := net.Listen("tcp", cfg.HTTP.Address)
	if err != nil {
		return fmt.Errorf("listen HTTP %s: %w", cfg.HTTP.Address, err)
	}

	var grpcLis net.Listener
	if s.grpcServer != nil {
		grpcLis, err = net.Listen("tcp", cfg.GRPC.Address)
		if err != nil {
			httpLis.Close()
			return fmt.Errorf("listen gRPC %s: %w", cfg.GRPC.Address, err)
		}
	}

	return s.serve(ctx, httpLis, grpcLis, log)
}

func (s *Servers) serve(ctx context.Context, httpLis, grpcLis net.Listener, log logrus.FieldLogger) error {
	errCh := make(chan error, 2)

	go func() {
		log.WithField("address", httpLis.Addr().String()).Info("HTTP server listening")
		if err := s.httpServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	if s.grpcServer != nil && grpcLis != nil {
		go func() {
			log.WithField("address", grpcLis.Addr().String()).Info("gRPC server listening")
			if err := s.grpcServer.Serve(grpcLis); err != nil {
				errCh <- err
			}
		}()
	}

	select {
	case err := <-errCh:
		s.stop()
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if s.grpcServer != nil {
			s.grpcServer.GracefulStop()
		}
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func (s *Servers) stop() {
	if s.grpcServer != nil {
		s.grpcServer.Stop()
	}
	_ = s.httpServer.Close()
}

func newServers(cfg *config.Config, flightSvc flights.FlightUseCase, log logrus.FieldLogger) *Servers {
	servers := &Servers{
		httpServer: &http.Server{
			Addr:              cfg.HTTP.Address,
			Handler:           api.NewRouter(flightSvc, log),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	if cfg.GRPC.Address != "" {
		grpcSrv := grpc.NewServer()
		flightsapi.RegisterFlightsServiceServer(grpcSrv, flightsapi.NewServer(flightSvc, log))
		servers.grpcServer = grpcSrv
	}
	return servers
}
