package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"go-decimal-calculator/internal/calc"
	"go-decimal-calculator/internal/config"
	"go-decimal-calculator/internal/metrics"
	"go-decimal-calculator/internal/observability"
	"go-decimal-calculator/internal/operations"
	"go-decimal-calculator/internal/repl"
	"go-decimal-calculator/internal/storage"
)

func main() {

	if err := loadDotEnv(); err != nil {
		panic(err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if err := os.MkdirAll(cfg.LogDir, 0o755); err != nil {
		panic(err)
	}
	if err := os.MkdirAll(cfg.HistoryDir, 0o755); err != nil {
		panic(err)
	}

	// Logger
	if err := observability.InitLogger(cfg.LogFile); err != nil {
		panic(err)
	}
	defer observability.SyncLogger()

	// Every log line of a run carries the same session id.
	observability.Logger = observability.Logger.With(
		zap.String("session_id", uuid.New().String()),
	)

	// Metrics
	if err := metrics.Init(); err != nil {
		panic(err)
	}

	store := storage.NewCSVStore(cfg.HistoryFile)
	calculator := calc.New(cfg, store)

	if err := calculator.LoadHistory(); err != nil {
		observability.Logger.Warn("could not load existing history", zap.Error(err))
	}

	calculator.AddObserver(calc.NewLoggingObserver())
	autoSave, err := calc.NewAutoSaveObserver(calculator)
	if err != nil {
		panic(err)
	}
	calculator.AddObserver(autoSave)
	calculator.AddObserver(metrics.NewObserver())

	observability.Logger.Info("calculator initialized with configuration")

	go waitForShutdown(calculator)

	r := repl.New(calculator, operations.NewRegistry(), os.Stdin, os.Stdout)
	if err := r.Run(); err != nil {
		observability.Logger.Error("repl terminated", zap.Error(err))
	}
}

// waitForShutdown saves history before the process dies on SIGINT/SIGTERM.
func waitForShutdown(calculator *calc.Calculator) {

	stop := make(chan os.Signal, 1)

	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop

	if err := calculator.SaveHistory(); err != nil {
		observability.Logger.Error("could not save history on shutdown", zap.Error(err))
	}
	observability.SyncLogger()
	os.Exit(0)
}
