// Command server wires the attendance verification engine: stores, the
// scoring sidecar client, the employee lock, the audit pipeline, and the
// HTTP surface. Business logic lives in the internal packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	attendancememory "github.com/rortizs/biometria-Sasvin/internal/attendance/store/memory"
	attendancepostgres "github.com/rortizs/biometria-Sasvin/internal/attendance/store/postgres"
	"github.com/rortizs/biometria-Sasvin/internal/audit"
	audithandler "github.com/rortizs/biometria-Sasvin/internal/audit/handler"
	"github.com/rortizs/biometria-Sasvin/internal/audit/publisher"
	auditmemory "github.com/rortizs/biometria-Sasvin/internal/audit/store/memory"
	auditpostgres "github.com/rortizs/biometria-Sasvin/internal/audit/store/postgres"
	auditworker "github.com/rortizs/biometria-Sasvin/internal/audit/worker"
	"github.com/rortizs/biometria-Sasvin/internal/facematch"
	"github.com/rortizs/biometria-Sasvin/internal/fraud"
	"github.com/rortizs/biometria-Sasvin/internal/liveness"
	"github.com/rortizs/biometria-Sasvin/internal/platform/config"
	"github.com/rortizs/biometria-Sasvin/internal/platform/httpserver"
	"github.com/rortizs/biometria-Sasvin/internal/platform/logger"
	"github.com/rortizs/biometria-Sasvin/internal/platform/postgres"
	platformredis "github.com/rortizs/biometria-Sasvin/internal/platform/redis"
	rostermemory "github.com/rortizs/biometria-Sasvin/internal/roster/store/memory"
	rosterpostgres "github.com/rortizs/biometria-Sasvin/internal/roster/store/postgres"
	"github.com/rortizs/biometria-Sasvin/internal/scoring"
	"github.com/rortizs/biometria-Sasvin/internal/verification"
	verificationhandler "github.com/rortizs/biometria-Sasvin/internal/verification/handler"
	"github.com/rortizs/biometria-Sasvin/internal/verification/lock"
	"github.com/rortizs/biometria-Sasvin/internal/verification/metrics"
	"github.com/rortizs/biometria-Sasvin/internal/verification/ports"
	"github.com/rortizs/biometria-Sasvin/pkg/platform/middleware/device"
	"github.com/rortizs/biometria-Sasvin/pkg/platform/middleware/metadata"
	"github.com/rortizs/biometria-Sasvin/pkg/platform/middleware/requestid"
	"github.com/rortizs/biometria-Sasvin/pkg/platform/middleware/requesttime"
)

const auditInboxCapacity = 1024

func main() {
	_ = godotenv.Load()

	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.Open(cfg.PostgresURL)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	var (
		records     ports.RecordsPort
		lister      verificationhandler.RecordLister
		roster      ports.RosterPort
		auditStore  audit.Store
		traceReader audithandler.TraceReader
	)
	if db != nil {
		store := attendancepostgres.New(db)
		records, lister = store, store
		roster = rosterpostgres.New(db)
		traces := auditpostgres.New(db)
		auditStore, traceReader = traces, traces
		log.Info("using postgres stores")
	} else {
		store := attendancememory.NewStore()
		records, lister = store, store
		roster = rostermemory.NewStore()
		traces := auditmemory.NewInMemoryStore()
		auditStore, traceReader = traces, traces
		log.Warn("DATABASE_URL not set, using in-memory stores")
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	var locks lock.EmployeeLock
	if redisClient != nil {
		defer redisClient.Close()
		locks = lock.NewRedis(redisClient.Client, cfg.Verification.LockTTL)
		log.Info("using redis employee lock")
	} else {
		locks = lock.NewMemory()
		log.Warn("REDIS_URL not set, using in-process employee lock")
	}

	if len(cfg.Kafka.Brokers) > 0 {
		kafka, err := publisher.NewKafka(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		if err != nil {
			return err
		}
		defer kafka.Close()
		auditStore = audit.Multi{auditStore, kafka}
		log.Info("publishing audit traces to kafka", "topic", cfg.Kafka.Topic)
	}

	auditSink := audit.NewChannelSink(auditInboxCapacity)
	worker := auditworker.NewWorker(auditStore, auditSink.Inbox(), log)
	go func() {
		if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Error("audit worker stopped", "error", err)
		}
	}()

	scorer := scoring.New(cfg.ScoringURL)
	gate, err := liveness.New(scorer, cfg.Verification.LivenessMinFrames, cfg.Verification.ScorerTimeout,
		liveness.WithLogger(log))
	if err != nil {
		return err
	}
	matcher, err := facematch.New(cfg.Verification.MatchThreshold, cfg.Verification.MatchMargin)
	if err != nil {
		return err
	}
	fraudEval := fraud.New(
		cfg.Verification.MaxTravelSpeedKmh,
		cfg.Verification.TravelLookback,
		cfg.Verification.DeviceHistoryMin,
	)

	service, err := verification.NewService(
		gate, matcher, fraudEval, scorer, roster, records, locks, auditSink,
		verification.Policy{
			LivenessThreshold:      cfg.Verification.LivenessThreshold,
			GeofenceRequired:       cfg.Verification.GeofenceRequired,
			BlockingSpeedRatio:     cfg.Verification.BlockingSpeedRatio,
			BlockConcurrentSession: cfg.Verification.BlockConcurrentSession,
			TravelLookback:         cfg.Verification.TravelLookback,
			ScorerTimeout:          cfg.Verification.ScorerTimeout,
			LockWait:               cfg.Verification.LockWait,
		},
		verification.WithLogger(log),
		verification.WithMetrics(metrics.New()),
	)
	if err != nil {
		return err
	}

	router := newRouter(cfg, log, service, lister, traceReader, db, redisClient)
	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting attendance engine", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}

func newRouter(
	cfg config.Server,
	log *slog.Logger,
	service *verification.Service,
	lister verificationhandler.RecordLister,
	traceReader audithandler.TraceReader,
	db *sql.DB,
	redisClient *platformredis.Client,
) chi.Router {
	router := chi.NewRouter()
	router.Use(requestid.Middleware)
	router.Use(requesttime.Middleware)
	router.Use(metadata.ClientMetadata)

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.PingContext(r.Context()); err != nil {
				http.Error(w, "database unreachable", http.StatusServiceUnavailable)
				return
			}
		}
		if redisClient != nil {
			if err := redisClient.Health(r.Context()); err != nil {
				http.Error(w, "redis unreachable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
	})

	handler := verificationhandler.New(service, lister, log)
	auditHandler := audithandler.New(traceReader, log)
	router.Route("/api/v1", func(api chi.Router) {
		if cfg.DeviceTokenKey != "" {
			validator := device.NewValidator([]byte(cfg.DeviceTokenKey))
			api.Use(device.RequireDevice(validator, log))
		} else {
			log.Warn("DEVICE_TOKEN_KEY not set, kiosk endpoints are unauthenticated")
		}
		handler.Register(api)
		auditHandler.Register(api)
	})

	return router
}
