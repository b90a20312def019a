package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	echoportal "github.com/darasa-lms/portal/apps/portal/echo"
	"github.com/darasa-lms/portal/core"
	"github.com/darasa-lms/portal/core/session"
	logsvc "github.com/darasa-lms/portal/services/logger"
	"github.com/darasa-lms/portal/services/lmsapi"
	memstore "github.com/darasa-lms/portal/storage/sessions/inmem"
	redisstore "github.com/darasa-lms/portal/storage/sessions/redis"
)

func main() {
	std := log.New(os.Stdout, "PORTAL : ", log.LstdFlags|log.Lshortfile)

	// set up services
	var logger core.Logger
	if core.Conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, core.Conf)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var store session.Store
	switch core.Conf.Session.Store {
	case "redis":
		rstore := redisstore.New(core.Conf.Redis)
		if err := rstore.Ping(ctx); err != nil {
			logger.Fatal("connecting to redis", err)
		}
		defer rstore.Close()
		store = rstore
	default:
		mstore := memstore.New()
		mstore.StartSweeper(ctx, time.Hour)
		store = mstore
	}

	api := lmsapi.New(core.Conf.APIBaseURL)
	sessions := session.NewService(store, api.Auth, core.Conf.Session.TTL)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	app := echoportal.NewServer(&echoportal.Options{
		Addr:           core.Conf.Server.Addr,
		DisableReqLogs: core.Conf.Server.DisableReqLogs,
		BackTrap:       core.Conf.Server.BackTrap,
		Logger:         logger,
		Sessions:       sessions,
		API:            api,
		SignalShutdown: func() { shutdown <- syscall.SIGTERM },
	})

	serverErrs := make(chan error, 1)
	go func() {
		logger.Info("portal listening on " + core.Conf.Server.Addr)
		serverErrs <- app.Start()
	}()

	select {
	case err := <-serverErrs:
		logger.Fatal("server error", err)
	case sig := <-shutdown:
		logger.Info("shutting down", sig)

		stopCtx, stopCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer stopCancel()
		if err := app.Stop(stopCtx); err != nil {
			logger.Error("graceful shutdown failed", err)
		}
	}
}
