package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/samandr77/microservices/fiscal/internal/api"
	"github.com/samandr77/microservices/fiscal/internal/api/events"
	"github.com/samandr77/microservices/fiscal/internal/audit"
	"github.com/samandr77/microservices/fiscal/internal/clients/orders"
	"github.com/samandr77/microservices/fiscal/internal/clients/pac"
	"github.com/samandr77/microservices/fiscal/internal/clients/s3"
	"github.com/samandr77/microservices/fiscal/internal/clients/settings"
	"github.com/samandr77/microservices/fiscal/internal/folio"
	"github.com/samandr77/microservices/fiscal/internal/lifecycle"
	"github.com/samandr77/microservices/fiscal/internal/repository"
	"github.com/samandr77/microservices/fiscal/internal/service"
	"github.com/samandr77/microservices/fiscal/pkg/broker"
	"github.com/samandr77/microservices/fiscal/pkg/config"
	"github.com/samandr77/microservices/fiscal/pkg/job"
	"github.com/samandr77/microservices/fiscal/pkg/logger"
	"github.com/samandr77/microservices/fiscal/pkg/metrics"
	"github.com/samandr77/microservices/fiscal/pkg/pacer"
	"github.com/samandr77/microservices/fiscal/pkg/postgres"
)

const (
	ReadTimeout     = 5 * time.Second
	WriteTimeout    = 10 * time.Minute // batch invoicing answers after the whole batch
	ShutdownTimeout = 30 * time.Second
)

const (
	folioStorePostgres = "postgres"
	folioStoreRedis    = "redis"
	folioStoreMemory   = "memory"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("load config", err)

	_, err = logger.New(cfg.Logger.Level)
	panicOnErr("create logger", err)

	pool, err := postgres.Connect(ctx, cfg.Postgres.DSN, cfg.Postgres.MaxConn)
	panicOnErr("connect to postgres", err)
	defer pool.Close()

	err = postgres.UpMigrations(cfg.Postgres.DSN)
	panicOnErr("up migrations", err)

	repo := repository.New(pool)

	policy, err := folio.ParsePolicy(cfg.Invoicing.FolioPolicy)
	panicOnErr("parse folio policy", err)

	var folioStore folio.Store

	switch cfg.Invoicing.FolioStore {
	case folioStorePostgres:
		folioStore = repo
	case folioStoreRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		err = rdb.Ping(ctx).Err()
		panicOnErr("connect to redis", err)

		if policy == folio.PolicyReserveOnCommit {
			slog.WarnContext(ctx, "redis folio counters do not roll back with the invoice transaction, folios may have gaps")
		}

		folioStore = folio.NewRedisStore(rdb, "")
	case folioStoreMemory:
		folioStore = folio.NewMemoryStore()
	default:
		panicOnErr("select folio store", fmt.Errorf("unknown folio store %q", cfg.Invoicing.FolioStore))
	}

	folios := folio.NewAllocator(folioStore, policy)

	producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic, cfg.Kafka.NotificationTopic)
	defer producer.Close()

	recorder := audit.NewRecorder(repo, producer)
	machine := lifecycle.New(repo, recorder, folios)

	m := metrics.New()

	storage, err := s3.New(ctx, cfg.S3)
	panicOnErr("create s3 storage", err)

	rates, err := service.NewStaticRates(cfg.ExchangeRates)
	panicOnErr("parse exchange rates", err)

	var p pacer.Pacer = pacer.Nop{}
	if cfg.Invoicing.PaceEvery > 0 {
		p = pacer.NewTokenBucket(cfg.Invoicing.PaceEvery, cfg.Invoicing.PaceBurst)
	}

	s := service.New(cfg.Invoicing, service.Deps{
		Repo:     repo,
		Machine:  machine,
		Folios:   folios,
		Audit:    recorder,
		Orders:   orders.NewClient(cfg.Orders),
		Settings: settings.NewClient(cfg.Settings),
		Gateway:  pac.NewClient(cfg.PAC, m),
		Storage:  storage,
		Notifier: producer,
		Rates:    rates,
		Metrics:  m,
		Pacer:    p,
	})

	jobs := job.NewRunner().
		WithObserver(m).
		Every("invoice scheduled orders", cfg.Invoicing.SweepInterval, s.SweepScheduled).
		Every("retry failed invoices", cfg.Invoicing.RetryInterval, s.RetryFailedInvoices).
		Every("reconcile pending invoices", cfg.Invoicing.ReconcileInterval, s.ReconcilePendingInvoices).
		Start(ctx)

	if cfg.Invoicing.ConsumeOrderEvents {
		eventHandler := events.NewEventHandler(s)

		consumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.OrderCompletedTopic).
			Handle(cfg.Kafka.OrderCompletedTopic, eventHandler.OnOrderCompleted).
			Consume(ctx)
		defer consumer.Close()
	}

	handler := api.NewHandler(s)
	mw := api.NewMiddleware(cfg.HTTP.APIKeyEnabled, cfg.HTTP.APIKey)

	router := api.NewRouter(handler, mw, m.Handler())

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("listen and serve: %s", err)
		}
	}()

	slog.InfoContext(ctx, "service started", "port", cfg.HTTP.Port, "folio_policy", policy,
		"folio_store", cfg.Invoicing.FolioStore)

	wg.Add(1)

	go func() {
		defer wg.Done()

		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		sig := <-ch

		slog.InfoContext(ctx, "got OS signal", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.WithoutCancel(ctx), ShutdownTimeout)
		defer shutdownCancel()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			slog.ErrorContext(ctx, "server shutdown", "error", err)
		}

		cancel()
		jobs.Wait()
	}()

	wg.Wait()
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}
