package main

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"github.com/Ivanblancs/weave-sync/internal/adapter"
	"github.com/Ivanblancs/weave-sync/internal/config"
	httphandler "github.com/Ivanblancs/weave-sync/internal/handler/http"
	"github.com/Ivanblancs/weave-sync/internal/logger"
	"github.com/Ivanblancs/weave-sync/internal/server"
	"github.com/Ivanblancs/weave-sync/internal/service"
	"github.com/Ivanblancs/weave-sync/internal/store"
	"github.com/Ivanblancs/weave-sync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("weave-syncd")
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx := context.Background()

	db, err := store.NewConnectSQLite(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}
	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("migrate local storage")
	}

	localStore := store.NewLocalStore(db, log)
	uploader := adapter.NewMediaUploader(cfg.Uploader, log)
	remote := adapter.NewDocumentStore(cfg.Remote, log)

	engine := service.NewSyncEngine(localStore, uploader, remote, cfg.Sync, log)

	check := workers.TCPCheck(probeAddress(cfg.Remote.BaseURL), cfg.Remote.Timeout)
	probe := workers.NewConnectivityProbe(check, cfg.Sync.ProbeInterval, log)
	monitor := workers.NewConnectivityMonitor(probe.Events(), check(ctx), engine.SyncPending, log)

	background := []workers.Worker{probe, monitor}
	if cfg.Sync.DrainInterval > 0 {
		background = append(background, workers.NewDrainJob(engine.SyncPending, cfg.Sync.DrainInterval))
	}
	jobs := workers.NewWorkers(background...)
	jobs.Run()
	defer jobs.Stop()

	handler := httphandler.NewHandler(engine, log)
	srv, err := server.NewServer(handler.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create status server")
	}

	srv.RunServer()
	engine.Wait()
}

// probeAddress derives a host:port dial target from the document store URL.
func probeAddress(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Host == "" {
		return baseURL
	}
	if _, _, splitErr := net.SplitHostPort(u.Host); splitErr == nil {
		return u.Host
	}
	if u.Scheme == "http" {
		return net.JoinHostPort(u.Host, "80")
	}
	return net.JoinHostPort(u.Host, "443")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
