package app

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/riubs/rental-service/config"
	"github.com/riubs/rental-service/internal/augment"
	"github.com/riubs/rental-service/internal/cache"
	"github.com/riubs/rental-service/internal/handler"
	"github.com/riubs/rental-service/internal/model"
	"github.com/riubs/rental-service/internal/queue"
	"github.com/riubs/rental-service/internal/repository"
	"github.com/riubs/rental-service/internal/server"
	"github.com/riubs/rental-service/internal/service"
	"github.com/riubs/rental-service/migrations"
	"github.com/riubs/rental-service/pkg/authgw"
	"github.com/riubs/rental-service/pkg/kafka"
	"github.com/riubs/rental-service/pkg/logger"
	"github.com/riubs/rental-service/pkg/postgres"
)

func Run(cfg config.Config) error {
	log := logger.NewLogger(cfg.Log, "rental")
	ctx := context.Background()

	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %v", err)
	}
	rdb, err := cache.NewRedisClient(ctx, cfg.Cache)
	if err != nil {
		return fmt.Errorf("redis init %v", err)
	}

	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo init %v", err)
	}

	enq := queue.NewNoop()
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return fmt.Errorf("kafka producer %v", err)
		}
		defer producer.Close() //nolint:errcheck
		enq = queue.NewEnqueuer(producer)
	}

	catalogCache := cache.New(rdb, cfg.Cache.TTL, log)
	augmentSvc := augment.NewService(cfg.Augment, log)
	svc := service.NewService(repo, catalogCache, augmentSvc, enq, log)
	authClient := authgw.NewClient(cfg.Auth, log)
	h := handler.New(svc, authClient, log)

	go seedAccounts(ctx, repo, cfg.Seed, log)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	if err = rdb.Close(); err != nil {
		log.Error("redis.Close", zap.Error(err))
	}
	db.Close()
	log.Info("Graceful shutdown finished")
	return nil
}

// seedAccounts ensures the default accounts exist. Capped retry with a fixed
// delay: the database may still be warming up right after deploy.
func seedAccounts(ctx context.Context, repo repository.Repository, cfg config.Seed, log *zap.Logger) {
	defaults := []model.Account{
		{Name: "Admin", Email: "admin@library.local", Role: "admin", Budget: 10000},
		{Name: "Demo User", Email: "demo@library.local", Role: "user", Budget: 5000},
	}
	for attempt := 1; attempt <= cfg.Attempts; attempt++ {
		var err error
		for _, acc := range defaults {
			if err = repo.EnsureAccount(ctx, acc); err != nil {
				break
			}
		}
		if err == nil {
			return
		}
		log.Error("seed default accounts", zap.Int("attempt", attempt), zap.Error(err))
		if attempt < cfg.Attempts {
			time.Sleep(cfg.Delay)
		}
	}
}
