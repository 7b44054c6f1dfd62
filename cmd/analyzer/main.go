// cmd/analyzer/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"skillgap-engine/internal/analysis"
	"skillgap-engine/internal/catalog"
	"skillgap-engine/internal/common/config"
	"skillgap-engine/internal/common/database"
	"skillgap-engine/internal/common/logger"
	"skillgap-engine/internal/common/observability"
	"skillgap-engine/internal/genai"
	"skillgap-engine/internal/history"
	"skillgap-engine/internal/models"
	"skillgap-engine/internal/notify"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting gap analyzer...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("gap-analyzer")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Skill catalog (corrupt catalog is startup-fatal) ---
	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		zapLog.Fatal("catalog load failed", zap.Error(err))
	}
	zapLog.Info("skill catalog loaded", zap.Int("skills", cat.Size()))

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	// --- Init Redis with retry ---
	var rdb *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		rdb, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return rdb.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")

	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer rdb.Close()
	zapLog.Info("Redis connected successfully")

	// --- History store ---
	store := history.NewPostgresStore(
		pg.GetDB(),
		rdb.GetClient(),
		time.Duration(cfg.Database.Redis.CacheTTL)*time.Second,
		log,
	)
	if err := store.EnsureSchema(ctx); err != nil {
		zapLog.Fatal("snapshot schema migration failed", zap.Error(err))
	}

	// --- Engine ---
	ai := genai.NewClient(cfg.GenAI, log)
	if ai == nil {
		zapLog.Info("AI extraction disabled, heuristic strategy only")
	}
	var engine *analysis.Engine
	if ai != nil {
		engine = analysis.NewEngine(cat, ai, log,
			analysis.WithAITimeout(config.GetDuration(cfg.GenAI.Timeout)),
			analysis.WithMinRequirements(cfg.Analysis.MinRequirements),
		)
	} else {
		engine = analysis.NewEngine(cat, nil, log,
			analysis.WithMinRequirements(cfg.Analysis.MinRequirements),
		)
	}

	// --- Notifier ---
	notifier, err := notify.New(ctx, cfg.Notifications, log)
	if err != nil {
		zapLog.Fatal("notifier init failed", zap.Error(err))
	}

	svc := &service{
		engine:   engine,
		store:    store,
		notifier: notifier,
		obs:      obs,
		logger:   log,
	}

	// --- Metrics server ---
	metricsAddr := fmt.Sprintf(":%d", cfg.Server.MetricsPort)
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(metricsAddr, mux); err != nil && err != http.ErrServerClosed {
			zapLog.Error("metrics server failed", zap.Error(err))
		}
	}()
	zapLog.Info("metrics server listening", zap.String("addr", metricsAddr))

	// --- API server ---
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		fmt.Fprint(w, `{"status":"ok"}`)
	})
	mux.HandleFunc("/api/v1/analyze", svc.handleAnalyze)
	mux.HandleFunc("/api/v1/trends", svc.handleTrends)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		zapLog.Info("api server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("api server failed", zap.Error(err))
		}
	}()

	// --- Graceful shutdown ---
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	zapLog.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("shutdown error", zap.Error(err))
	}
}

// service holds the request-scoped wiring around the pure engine.
type service struct {
	engine   *analysis.Engine
	store    history.Store
	notifier *notify.Notifier
	obs      *observability.Observability
	logger   logger.Logger
}

type analyzeRequest struct {
	Job        models.Job         `json:"job"`
	UserSkills []models.UserSkill `json:"userSkills"`
	Recipient  notify.Recipient   `json:"recipient"`
}

func (s *service) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("parse request: %v", err), http.StatusBadRequest)
		return
	}

	start := time.Now()
	ctx := r.Context()

	prior, err := s.store.List(ctx, req.Job.ID)
	if err != nil {
		s.logger.Error("history read failed", map[string]interface{}{"jobId": req.Job.ID, "error": err})
		http.Error(w, "history read failed", http.StatusInternalServerError)
		return
	}

	snapshot, err := s.engine.Analyze(ctx, req.Job, req.UserSkills, prior)
	if err != nil {
		s.obs.RecordAnalysis(ctx, "failed")
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// The snapshot is immutable once built; persistence is one atomic
	// append onto the job's history.
	if err := s.store.Append(ctx, req.Job, *snapshot); err != nil {
		s.logger.Error("snapshot append failed", map[string]interface{}{"jobId": req.Job.ID, "error": err})
		http.Error(w, "snapshot append failed", http.StatusInternalServerError)
		return
	}

	s.notifier.NotifyCriticalGaps(ctx, req.Job, snapshot, req.Recipient)

	s.obs.RecordAnalysis(ctx, "success")
	s.obs.RecordAnalysisDuration(ctx, time.Since(start), "success")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(snapshot)
}

func (s *service) handleTrends(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	jobs, err := s.store.JobsWithSnapshots(r.Context())
	if err != nil {
		s.logger.Error("trend query failed", map[string]interface{}{"error": err})
		http.Error(w, "trend query failed", http.StatusInternalServerError)
		return
	}

	summary := s.engine.CrossJobTrends(jobs)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(summary)
}
