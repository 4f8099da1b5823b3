package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fulldump/box"
	"github.com/fulldump/goconfig"
	"google.golang.org/grpc"
	"google.golang.org/grpc/reflection"

	"github.com/light-bringer/procat-batchedit/internal/configuration"
	"github.com/light-bringer/procat-batchedit/internal/services"
	"github.com/light-bringer/procat-batchedit/internal/transport/grpc/grid"
	httpapi "github.com/light-bringer/procat-batchedit/internal/transport/http"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Load configuration from flags and environment variables
	c := configuration.Default()
	goconfig.Read(&c)

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
	}

	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	log.Printf("Starting Product Grid Service...")
	log.Printf("Record source: %s", c.Source)
	if c.Source == configuration.SourceSpanner {
		log.Printf("Spanner Database: %s", c.SpannerDB)
	}

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, c, log.New(os.Stdout, "SESSION: ", log.LstdFlags))
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. Load the working set before accepting edits
	if _, err := serviceOpts.ReadProducts.Execute(ctx); err != nil {
		return fmt.Errorf("failed to load products: %w", err)
	}

	// 4. Create gRPC server
	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(grid.AccessLog(log.New(os.Stdout, "GRPC: ", log.LstdFlags))),
	)
	grid.RegisterGridServiceServer(grpcServer, serviceOpts.GridHandler)

	// 5. Enable reflection (for grpcurl and debugging)
	reflection.Register(grpcServer)

	lis, err := net.Listen("tcp", c.GrpcAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on gRPC address: %w", err)
	}

	go func() {
		log.Printf("gRPC server listening on %s", c.GrpcAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Printf("gRPC server error: %v", err)
		}
	}()

	// 6. Create HTTP server
	b := httpapi.Build(serviceOpts.HTTPHandlers)
	b.WithInterceptors(
		httpapi.AccessLog(log.New(os.Stdout, "ACCESS: ", log.LstdFlags)),
		httpapi.PrettyErrorInterceptor,
		httpapi.RecoverFromPanic,
	)

	httpServer := &http.Server{
		Addr:              c.HttpAddr,
		Handler:           box.Box2Http(b),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", c.HttpAddr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// 7. Graceful shutdown handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	sig := <-sigCh

	log.Printf("Signal received %s, shutting down gracefully...", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	grpcServer.GracefulStop()

	return nil
}
