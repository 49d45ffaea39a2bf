package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/akurlov/shortly/internal/app"
	"github.com/akurlov/shortly/internal/config"
	"github.com/akurlov/shortly/internal/logger"
	"github.com/akurlov/shortly/internal/logic"
	"github.com/akurlov/shortly/internal/remotelog"
	"github.com/akurlov/shortly/internal/repository"
	"github.com/akurlov/shortly/internal/resolver"
	"github.com/akurlov/shortly/internal/store"
	"github.com/akurlov/shortly/internal/store/fs"
	"github.com/akurlov/shortly/internal/store/memory"
	"github.com/akurlov/shortly/internal/store/postgres"
	"github.com/akurlov/shortly/internal/store/redis"
)

func newKV(cfg *config.ServerConfig) (store.KV, error) {
	switch {
	case cfg.DatabaseDSN != "":
		return postgres.NewPostgresStore(cfg.DatabaseDSN)
	case cfg.RedisAddr != "":
		return redis.NewRedisStorage(cfg.RedisAddr, "", 0)
	case cfg.FileStoragePath != "":
		return fs.NewFileStorage(cfg.FileStoragePath)
	default:
		return memory.NewMemoryStorage(nil)
	}
}

func newDiag(cfg *config.ServerConfig, l *zap.SugaredLogger) remotelog.Logger {
	if cfg.LogAPIURL != "" {
		return remotelog.NewClient(cfg.LogAPIURL, cfg.LogClientID, cfg.LogClientSecret, l.Named("remotelog"))
	}
	return remotelog.NewLocal(l.Named("diag"))
}

func run() error {
	cfg, err := config.ParseFlags()
	if err != nil {
		return err
	}

	l, err := logger.NewLogger()
	if err != nil {
		return err
	}
	defer func() {
		_ = l.Sync()
	}()

	kv, err := newKV(cfg)
	if err != nil {
		return err
	}

	repo := repository.NewRepository(kv, l.Named("repository"))
	defer repo.Close()

	diag := newDiag(cfg, l)
	core := logic.NewCoreLogic(cfg, repo, l.Named("logic"), diag)
	res := resolver.NewResolver(core, diag)

	a := app.NewApp(cfg, core, res, l.Named("app"))
	r, err := a.SetupRouter()
	if err != nil {
		return err
	}

	if cfg.EnableHTTPS {
		if err := app.CreateCertificates(cfg.TLSCertPath, cfg.TLSKeyPath, l.Named("tls")); err != nil {
			return err
		}
		return r.RunTLS(cfg.RunAddr, cfg.TLSCertPath, cfg.TLSKeyPath)
	}

	return r.Run(cfg.RunAddr)
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
