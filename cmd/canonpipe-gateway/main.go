// Command canonpipe-gateway serves a completed batch run's report and
// error streams over HTTP, for dashboards or on-call tooling that would
// rather poll an endpoint than tail files on the driver's host.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"canonpipe/internal/config"
	"canonpipe/internal/reportserver"
	"canonpipe/internal/safeio"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	fs, err := safeio.NewSafeFS(".")
	if err != nil {
		log.Fatal(err)
	}

	mux := reportserver.NewMux(fs, reportserver.Paths{
		ReportPath: cfg.ReportPath,
		ErrorPath:  cfg.ErrorPath,
	})
	srv := reportserver.New(cfg.GatewayAddr, mux)

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("canonpipe-gateway: server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("canonpipe-gateway: shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("canonpipe-gateway: forced shutdown: %v", err)
	}
	log.Println("canonpipe-gateway: exited")
}
