package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	catalogservice "custodia/internal/catalog/service"
	catalogstore "custodia/internal/catalog/store"
	"custodia/internal/customer/events"
	customerhandler "custodia/internal/customer/handler"
	customermetrics "custodia/internal/customer/metrics"
	"custodia/internal/customer/service"
	addressstore "custodia/internal/customer/store/address"
	cardscanstore "custodia/internal/customer/store/cardscan"
	commandlogstore "custodia/internal/customer/store/commandlog"
	contactdetailstore "custodia/internal/customer/store/contactdetail"
	customerstore "custodia/internal/customer/store/customer"
	fieldvaluestore "custodia/internal/customer/store/fieldvalue"
	cardstore "custodia/internal/customer/store/identificationcard"
	portraitstore "custodia/internal/customer/store/portrait"
	"custodia/internal/platform/config"
	"custodia/internal/platform/httpserver"
	"custodia/internal/platform/jwttoken"
	"custodia/internal/platform/kafka"
	"custodia/internal/platform/logger"
	platformmetrics "custodia/internal/platform/metrics"
	"custodia/internal/platform/middleware"
	platformredis "custodia/internal/platform/redis"
	taskhandler "custodia/internal/task/handler"
	taskservice "custodia/internal/task/service"
	taskstore "custodia/internal/task/store"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	slog.SetDefault(log)

	if err := run(context.Background(), cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		uow     service.UnitOfWork
		stores  service.Stores
		tasks   taskservice.Store
		catalog catalogservice.Store
	)
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			return fmt.Errorf("ping database: %w", err)
		}

		uow = service.NewSQLUnitOfWork(db)
		stores = service.Stores{
			Customers:      customerstore.NewPostgres(db),
			Addresses:      addressstore.NewPostgres(db),
			ContactDetails: contactdetailstore.NewPostgres(db),
			Cards:          cardstore.NewPostgres(db),
			Scans:          cardscanstore.NewPostgres(db),
			Portraits:      portraitstore.NewPostgres(db),
			FieldValues:    fieldvaluestore.NewPostgres(db),
			CommandLog:     commandlogstore.NewPostgres(db),
		}
		tasks = taskstore.NewPostgres(db)
		catalog = catalogstore.NewPostgres(db)
	} else {
		log.Warn("no database configured, using in-memory stores")
		uow = service.NewShardedUnitOfWork()
		stores = service.Stores{
			Customers:      customerstore.NewInMemory(),
			Addresses:      addressstore.NewInMemory(),
			ContactDetails: contactdetailstore.NewInMemory(),
			Cards:          cardstore.NewInMemory(),
			Scans:          cardscanstore.NewInMemory(),
			Portraits:      portraitstore.NewInMemory(),
			FieldValues:    fieldvaluestore.NewInMemory(),
			CommandLog:     commandlogstore.NewInMemory(),
		}
		tasks = taskstore.NewInMemory()
		catalog = catalogstore.NewInMemory()
	}

	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var publisher service.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(ctx, cfg.KafkaBrokers, cfg.EventTopic)
		if err != nil {
			return fmt.Errorf("connect kafka: %w", err)
		}
		defer func() {
			closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := producer.Close(closeCtx); err != nil {
				log.Warn("kafka producer close failed", "error", err)
			}
		}()
		publisher = events.NewKafkaPublisher(producer)
	} else {
		log.Warn("no kafka brokers configured, events stay in process")
		publisher = events.NewMemoryPublisher()
	}

	taskSvc := taskservice.New(tasks, log)
	catalogLookup := catalogservice.NewLookup(catalog, redisClient, log)

	svc := service.New(uow, stores, taskSvc, catalogLookup,
		service.WithLogger(log),
		service.WithEventPublisher(publisher),
		service.WithMetrics(customermetrics.New()),
	)

	httpMetrics := platformmetrics.New()
	tokens := jwttoken.New(cfg.JWTSigningKey, cfg.JWTIssuer)

	r := chi.NewRouter()
	r.Use(middleware.Recovery(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Latency(httpMetrics))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokens, log))
		r.Use(middleware.ContentTypeJSON)
		r.Use(middleware.Timeout(cfg.CommandTimeout))
		customerhandler.New(svc, log).Routes(r)
		taskhandler.New(taskSvc, log).Routes(r)
	})

	srv := httpserver.New(cfg.Addr, r)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
