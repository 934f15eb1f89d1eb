package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/will-terra/teste-time-register/internal/core/auth"
	"github.com/will-terra/teste-time-register/internal/core/cache"
	"github.com/will-terra/teste-time-register/internal/core/config"
	"github.com/will-terra/teste-time-register/internal/core/database"
	"github.com/will-terra/teste-time-register/internal/core/logger"
	"github.com/will-terra/teste-time-register/internal/core/server"
	"github.com/will-terra/teste-time-register/internal/jobs"
	"github.com/will-terra/teste-time-register/internal/repo"
	"github.com/will-terra/teste-time-register/internal/service"
	"github.com/will-terra/teste-time-register/internal/storage"
	"github.com/will-terra/teste-time-register/internal/transport/http/handler"
	"github.com/will-terra/teste-time-register/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	users := repo.NewUserRepo(db)
	registers := repo.NewTimeRegisterRepo(db)
	reports := repo.NewReportRepo(db)
	store := storage.NewLocal(cfg.Reports.Dir)

	executor := jobs.NewExecutor(reports, users, registers, store, log)
	pool := jobs.NewPool(executor, cfg.Jobs.Workers, cfg.Jobs.QueueSize, log)

	reportSvc := service.NewReportService(reports, users, store, pool)
	if cfg.Redis.Addr != "" {
		c := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		reportSvc = reportSvc.WithCache(c, time.Duration(cfg.Reports.StatusCacheTTLSec)*time.Second)
		log.Info("status cache enabled", zap.String("redis", cfg.Redis.Addr))
	}

	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	deps := router.Deps{
		Log:     log,
		JWTer:   jwter,
		Users:   handler.NewUserHandler(service.NewUserService(users), service.NewTimeRegisterService(db), reportSvc),
		TimeReg: handler.NewTimeRegisterHandler(service.NewTimeRegisterService(db)),
		Reports: handler.NewReportHandler(reportSvc),
	}
	if cfg.Admin.Email != "" {
		deps.Admin = handler.NewAdminHandler(cfg.Admin.Email, cfg.Admin.Password, jwter, users, reports)
	}
	r := router.NewEngine(deps)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api start FAILED", zap.Error(err))
		}
	}()
	log.Info("api started", zap.String("addr", addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	// Let queued report jobs finish before exiting.
	pool.Stop()
	log.Info("api stopped gracefully")
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
