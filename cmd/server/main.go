package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	bootstrap "github.com/cramerservices/plans-api/api/bootstrap"
	config "github.com/cramerservices/plans-api/api/config"
	"github.com/cramerservices/plans-api/api/router"
)

func main() {
	if err := bootstrap.Ensure(); err != nil {
		slog.Error("bootstrap failed", "err", err)
		os.Exit(1)
	}

	handler := router.NewRouter()
	addr := ":" + config.AppConfig.HTTPPort

	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	slog.Info("plans api listening", "addr", addr)
	if err := srv.ListenAndServe(); err != nil {
		slog.Error("server exited", "err", err)
		os.Exit(1)
	}
}
